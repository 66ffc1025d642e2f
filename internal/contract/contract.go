//go:build pact

// Package contract holds the names, provider states and example payloads
// shared by the adoption portal consumer pact and the API provider check.
package contract

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "paws-adoption-api"
	ConsumerName = "adoption-portal"

	StateEmpty      = "no pets or users"
	StatePetExists  = "pet Fluffy exists"
	StatePetsSearch = "castrated large pets exist"
	StateUserExists = "user pact-user exists"
)

const (
	// Provider states rebuild the in-memory stores, so seeded rows start at 1.
	ExistingPetID int64 = 1
	MissingPetID  int64 = 404

	ExamplePetName      = "Fluffy"
	UserPrimaryUsername = "pact-user"
	UserPassword        = "pact-pass"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the pact file the consumer writes and the provider verifies.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePetPayload is the pet the portal registers.
func ExamplePetPayload() map[string]any {
	return map[string]any{
		"name":       ExamplePetName,
		"size":       "MEDIUM",
		"castrated":  true,
		"dewormed":   true,
		"vaccinated": false,
	}
}

// ExampleUserPayload is the account the portal registers.
func ExampleUserPayload() map[string]any {
	return map[string]any{
		"name":     "Pact User",
		"username": UserPrimaryUsername,
		"password": UserPassword,
		"contact":  map[string]any{"email": "pact.user@example.com"},
		"address":  map[string]any{"city": "Berlin"},
		"role":     "NORMAL",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
