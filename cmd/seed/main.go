package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/config"
	"github.com/turnosmed/gestor-turnos/backend/internal/repository"
	"github.com/turnosmed/gestor-turnos/backend/internal/rules"
	"github.com/turnosmed/gestor-turnos/backend/internal/schedule"
	"github.com/turnosmed/gestor-turnos/backend/internal/seed"
	"github.com/turnosmed/gestor-turnos/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var specialty string

	flag.IntVar(&op, "op", 0, "operación (1: datos iniciales, 2: médicos aleatorios, 3: usuarios aleatorios)")
	flag.IntVar(&n, "n", 5, "número de registros a insertar")
	flag.StringVar(&specialty, "specialty", "", "especialidad para los registros aleatorios")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("no se pudo cargar la configuración", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("no se pudo crear el pool de conexiones", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect, so ping explicitly.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("no se pudo conectar a la base de datos", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	sched := schedule.NewService(repo, rules.Thresholds{
		MaxWeekly:      cfg.Rules.MaxWeeklyHours,
		MonthlyWarning: cfg.Rules.MonthlyHoursWarning,
		MonthlyMax:     cfg.Rules.MonthlyHoursMax,
		MonthlyMin:     cfg.Rules.MonthlyHoursMin,
	})

	switch op {
	case 0:
		slog.Error("no se especificó ninguna operación")
	case 1:
		seed.SeedInitialData(cfg, repo, sched)
	case 2:
		if specialty == "" {
			slog.Error("indique la especialidad con -specialty")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			doctor := utils.GenerateRandomDoctor(specialty)
			if err := repo.CreateDoctor(doctor); err != nil {
				slog.Error("no se pudo insertar el médico", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("médicos insertados", slog.Int("count", cnt))
	case 3:
		if specialty == "" {
			slog.Error("indique la especialidad con -specialty")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.UserPassword, cfg.Email.UserDomain, specialty)
			if err != nil {
				slog.Error("no se pudo generar el usuario", slog.String("error", err.Error()))
				continue
			}
			if err := repo.CreateUser(user); err != nil {
				slog.Error("no se pudo insertar el usuario", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("usuarios insertados", slog.Int("count", cnt))
	default:
		slog.Error("la operación indicada no es válida")
	}
}
