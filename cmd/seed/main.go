// seed puebla la base con datos de demostración: un usuario admin con
// membresía en todos los silos y un catálogo de productos de crédito por silo.
//
// Uso: go run ./cmd/seed
// Requiere STORAGE_DRIVER=postgres y la configuración de DB en el entorno.
// Es idempotente: los registros ya existentes se saltan.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/infrastructure/postgres"
	"github.com/werb210/staff-portal-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}
	if cfg.Storage.Driver != "postgres" {
		fail("el seed requiere STORAGE_DRIVER=postgres (actual: %s)", cfg.Storage.Driver)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	seedAdmin(pool)
	for _, s := range entity.AllSilos() {
		seedProducts(pool, s)
	}
	fmt.Println("seed completado")
}

func seedAdmin(pool postgres.Querier) {
	userRepo := postgres.NewUserRepository(pool)
	existing, err := userRepo.FindByEmail("admin@staff-portal.local")
	if err != nil {
		fail("buscar admin: %v", err)
	}
	if existing != nil {
		fmt.Println("admin ya existe, se salta")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("cambiar-ahora"), bcrypt.DefaultCost)
	if err != nil {
		fail("hash de password: %v", err)
	}
	now := time.Now().UTC()
	admin := &entity.User{
		ID:           uuid.NewString(),
		Email:        "admin@staff-portal.local",
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         entity.RoleAdmin,
		Silos:        entity.AllSilos(),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		fail("crear admin: %v", err)
	}
	fmt.Println("admin creado: admin@staff-portal.local / cambiar-ahora")
}

func seedProducts(pool postgres.Querier, s entity.Silo) {
	repo := postgres.NewLenderProductRepository(pool, s)
	now := time.Now().UTC()

	products := []*entity.LenderProduct{
		{
			ID: "term-loan-base", LenderName: "Capital One Partners", Name: "Crédito a plazo",
			Category: "term_loan",
			MinAmount: decimal.NewFromInt(10_000), MaxAmount: decimal.NewFromInt(500_000),
			RatePct: decimal.NewFromFloat(12.5),
		},
		{
			ID: "loc-base", LenderName: "Meridian Lending", Name: "Línea de crédito",
			Category: "line_of_credit",
			MinAmount: decimal.NewFromInt(5_000), MaxAmount: decimal.NewFromInt(250_000),
			RatePct: decimal.NewFromFloat(15.0),
		},
		{
			ID: "equipment-base", LenderName: "Northline Equipment Finance", Name: "Financiamiento de equipos",
			Category: "equipment",
			MinAmount: decimal.NewFromInt(25_000), MaxAmount: decimal.NewFromInt(1_000_000),
			RatePct: decimal.NewFromFloat(9.75),
		},
	}

	for _, p := range products {
		p.Silo = s
		p.Active = true
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := repo.Create(p); err != nil {
			if err == domain.ErrDuplicate {
				fmt.Printf("[%s] producto %s ya existe, se salta\n", s, p.ID)
				continue
			}
			fail("[%s] crear producto %s: %v", s, p.ID, err)
		}
		fmt.Printf("[%s] producto %s creado\n", s, p.ID)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
