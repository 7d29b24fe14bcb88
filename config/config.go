package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "tiendago",
		Location: "Europe/Madrid",
		Workdir:  "/var/tiendago",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   3000,
		Secret: "9b6de5cc-tiendago-1c24abc3",
	},
	Database: DBConfig{
		Type:   "postgres",
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "tiendago",
		User:   "postgres",
		Passwd: "",
		Debug:  false,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/tiendago/tiendago.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

// LoadConfig reads the yaml configuration file, falling back to defaults and
// applying TIENDAGO_* environment overrides last.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig

	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("TIENDAGO_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("TIENDAGO_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("TIENDAGO_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("TIENDAGO_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("TIENDAGO_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("TIENDAGO_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("TIENDAGO_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("TIENDAGO_DB_PWD", func(v string) { cfg.Database.Passwd = v })

	if cfg.Logger.Filename == "" {
		cfg.Logger.Filename = filepath.Join(cfg.System.Workdir, "tiendago.log")
	}
	return cfg
}
