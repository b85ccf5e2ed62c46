package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Backend tests run against live servers when their address is set:
//
//	TRACESPLIT_TEST_REDIS_ADDR=localhost:6379
//	TRACESPLIT_TEST_MONGO_URI=mongodb://localhost:27017

func testBackend(t *testing.T, c Cache, clearAll func(context.Context) (int, error)) {
	t.Helper()
	ctx := context.Background()
	defer c.Close()

	if _, err := clearAll(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get(empty) = %v, %v; want miss", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v; want v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TRACESPLIT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRACESPLIT_TEST_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), addr)
	if err != nil {
		t.Fatal(err)
	}
	testBackend(t, c, c.Clear)
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("TRACESPLIT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TRACESPLIT_TEST_MONGO_URI not set")
	}
	c, err := NewMongoCache(context.Background(), uri, "tracesplit_test")
	if err != nil {
		t.Fatal(err)
	}
	testBackend(t, c, c.Clear)
}
