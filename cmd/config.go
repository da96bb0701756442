package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Geocoding. Without a Google key the static pincode table is used.
	GoogleMapsAPIKey string
	GeocodeBaseURL   string
	GeocodeTimeout   time.Duration
	RedisAddr        string
	GeocodeCacheTTL  time.Duration

	// RabbitMQURL enables lifecycle event publishing when set.
	RabbitMQURL string

	MaxAssignmentsPerWorker int
	// AssignmentCountOpenOnly counts only requests that are not COMPLETED or
	// CANCELLED towards a worker's load.
	AssignmentCountOpenOnly bool
	AssignmentJobSchedule   string
	NearbyDefaultRadiusKm   float64
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}
