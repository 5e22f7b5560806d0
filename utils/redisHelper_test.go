package utils

import "testing"

type cachedThing struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestGetTypeName(t *testing.T) {
	if got := GetTypeName[cachedThing](); got != "cachedThing" {
		t.Fatalf("GetTypeName = %q", got)
	}
}

// Redis is an optimization layer: with no client connected, the cache helpers
// must degrade to misses and no-ops, never errors.
func TestRedisHelpersDegradeWithoutRedis(t *testing.T) {
	if err := StoreRedis[cachedThing](&cachedThing{ID: 1, Name: "x"}, 1); err != nil {
		t.Fatalf("StoreRedis without redis: %v", err)
	}

	obj, err := RetrieveRedis[cachedThing](1)
	if err != nil {
		t.Fatalf("RetrieveRedis without redis: %v", err)
	}
	if obj != nil {
		t.Fatalf("RetrieveRedis without redis = %+v, want miss", obj)
	}

	if err := RemoveRedis[cachedThing](1); err != nil {
		t.Fatalf("RemoveRedis without redis: %v", err)
	}
}
