package config

import (
	"os"
	"strconv"
	"strings"

	"transitlog/internal/domain"
)

type Env struct {
	AppAddr            string
	GinMode            string
	ArchiveDSN         string
	SingleActiveTrip   bool
	CORSAllowedOrigins []string
	PageSize           int
}

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	singleActive, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("SINGLE_ACTIVE_TRIP")))

	origins := defaultCORSOrigins
	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		origins = []string{}
		for _, o := range strings.Split(env, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				origins = append(origins, o)
			}
		}
	}

	pageSize, err := strconv.Atoi(strings.TrimSpace(os.Getenv("PAGE_SIZE")))
	if err != nil || pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            ginMode,
		ArchiveDSN:         strings.TrimSpace(os.Getenv("ARCHIVE_DSN")),
		SingleActiveTrip:   singleActive,
		CORSAllowedOrigins: origins,
		PageSize:           pageSize,
	}
}
