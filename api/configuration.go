package api

import "time"

type Configuration struct {
	Env                 string
	AppName             string
	AppVersion          string
	Port                string
	AppUrl              string
	RequestLoggingLevel string
	TokenLifetimeMinute int
	DefaultTimeout      time.Duration
}
