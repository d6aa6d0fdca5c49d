package db

import (
	"context"
	"testing"
)

type gadget struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func TestNewTestSharesSchemaAcrossConnections(t *testing.T) {
	conn, err := NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := conn.AutoMigrate(&gadget{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := conn.Create(&gadget{ID: 1, Name: "a"}).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to unwrap pool: %v", err)
	}
	// pin a connection so the next query is served by a fresh one
	pinned, err := sqlDB.Conn(context.Background())
	if err != nil {
		t.Fatalf("failed to pin connection: %v", err)
	}
	defer pinned.Close()

	var count int64
	if err := conn.Model(&gadget{}).Count(&count).Error; err != nil {
		t.Fatalf("count on second connection failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestNewTestIsolatesCalls(t *testing.T) {
	first, err := NewTest()
	if err != nil {
		t.Fatalf("failed to open first db: %v", err)
	}
	if err := first.AutoMigrate(&gadget{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := first.Create(&gadget{ID: 1, Name: "a"}).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	second, err := NewTest()
	if err != nil {
		t.Fatalf("failed to open second db: %v", err)
	}
	if second.Migrator().HasTable(&gadget{}) {
		t.Fatal("expected a fresh database per call")
	}
}
