package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tiendalabs/tiendago/internal/domain"
	"github.com/tiendalabs/tiendago/internal/order"
)

// TopicAuthLogin is published with (email, clientIP, outcome, message) after
// every login attempt.
const TopicAuthLogin = "auth:login"

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		retention := a.GetSettingsInt64Value("auth", "log_retention_days")
		if retention <= 0 {
			retention = 365
		}
		a.gormDB.
			Where("created_at < ?", time.Now().Add(-time.Hour*24*time.Duration(retention))).
			Delete(domain.AuthLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", a.SchedOrderCensusTask)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedOrderCensusTask logs order counts per status for operational visibility.
func (a *Application) SchedOrderCensusTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	type statusCount struct {
		Status string
		Total  int64
	}
	var counts []statusCount
	err := a.gormDB.Model(&domain.Order{}).
		Select("status, count(*) AS total").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		zap.L().Error("order census query failed", zap.Error(err))
		return
	}

	fields := make([]zap.Field, 0, len(counts))
	for _, c := range counts {
		fields = append(fields, zap.Int64(c.Status, c.Total))
	}
	zap.L().Info("order census", fields...)
}

func (a *Application) initSubscriptions() {
	if err := a.bus.SubscribeAsync(TopicAuthLogin, a.onAuthLogin, false); err != nil {
		zap.S().Errorf("subscribe %s error %s", TopicAuthLogin, err.Error())
	}
	if err := a.bus.Subscribe(order.TopicOrderCreated, a.onOrderCreated); err != nil {
		zap.S().Errorf("subscribe %s error %s", order.TopicOrderCreated, err.Error())
	}
}

func (a *Application) onAuthLogin(email, clientIP, outcome, message string) {
	row := domain.AuthLog{
		Email:    email,
		ClientIP: clientIP,
		Outcome:  outcome,
		Message:  message,
	}
	if err := a.gormDB.Create(&row).Error; err != nil {
		zap.L().Error("failed to write auth log", zap.String("email", email), zap.Error(err))
	}
}

func (a *Application) onOrderCreated(orderID, customerID int64, total float64) {
	zap.L().Info("checkout completed",
		zap.Int64("order_id", orderID),
		zap.Int64("customer_id", customerID),
		zap.Float64("total", total))
}
