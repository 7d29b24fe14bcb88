package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&AuthLog{},
	// Store
	&Customer{},
	&Product{},
	&Order{},
	&OrderLine{},
}
