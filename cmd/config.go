package cmd

import "time"

type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	AccessCodeLength int
	ReservationTTL   time.Duration
	SweepSchedule    string
	SeedDemoData     bool
}
