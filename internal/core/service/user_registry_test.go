package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sustaincity/city-backend/internal/core/domain"
	"github.com/sustaincity/city-backend/internal/core/ports"
)

func newTestRegistry() *UserRegistry {
	return NewUserRegistry(NewPasswordHasher(4), zerolog.Nop())
}

func TestUserRegistry_CreateAndLookup(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	user, err := reg.Create(ctx, domain.RoleCityManager, ports.CreateUserInput{
		Username: "alice", Password: "pw123456", Email: "alice@city.gov", Name: "Alice",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "pw123456" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if !user.Active {
		t.Fatalf("new users start active")
	}
	if user.LastLogin != nil {
		t.Fatalf("last login must be unset before first login")
	}

	byName, err := reg.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find by username failed: %v", err)
	}
	byID, err := reg.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if byName.ID != byID.ID || byName.Username != byID.Username {
		t.Fatalf("both indices must resolve the same record")
	}
}

func TestUserRegistry_DuplicateUsername(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	if _, err := reg.Create(ctx, domain.RoleCityManager, ports.CreateUserInput{Username: "bob", Password: "pw123456"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := reg.Create(ctx, domain.RoleCityManager, ports.CreateUserInput{Username: "bob", Password: "other456"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserRegistry_ConcurrentCreateSameUsername(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Create(ctx, domain.RoleServiceProviderUser, ports.CreateUserInput{
				Username: "contended", Password: "pw123456",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, duplicates := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrUserExists):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || duplicates != attempts-1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d duplicates", successes, duplicates)
	}
}

func TestUserRegistry_ConcurrentCreateUniqueIDs(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int64, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user, err := reg.Create(ctx, domain.RoleServiceProviderUser, ports.CreateUserInput{
				Username: "user" + string(rune('a'+i)), Password: "pw123456",
			})
			if err != nil {
				t.Errorf("create failed: %v", err)
				return
			}
			ids <- user.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id assigned: %d", id)
		}
		seen[id] = true
	}
}

func TestUserRegistry_UpdatePartial(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	user, err := reg.Create(ctx, domain.RoleCityManager, ports.CreateUserInput{
		Username: "carol", Password: "pw123456", Email: "carol@city.gov", Name: "Carol",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := false
	updated, err := reg.Update(ctx, user.ID, ports.UpdateUserInput{Active: &inactive})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Active {
		t.Fatalf("active flag must be overwritten")
	}
	if updated.Email != "carol@city.gov" || updated.Name != "Carol" {
		t.Fatalf("omitted fields must keep stored values, got email=%q name=%q", updated.Email, updated.Name)
	}

	email := "new@city.gov"
	updated, err = reg.Update(ctx, user.ID, ports.UpdateUserInput{Email: &email})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Email != "new@city.gov" {
		t.Fatalf("present field must be applied")
	}
	if updated.Active {
		t.Fatalf("earlier update must persist")
	}
}

func TestUserRegistry_UpdateNotFound(t *testing.T) {
	reg := newTestRegistry()
	if _, err := reg.Update(context.Background(), 404, ports.UpdateUserInput{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRegistry_DeleteRemovesBothIndices(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	user, err := reg.Create(ctx, domain.RoleCityManager, ports.CreateUserInput{Username: "dave", Password: "pw123456"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if !reg.Delete(ctx, user.ID) {
		t.Fatalf("delete reported nothing removed")
	}
	if reg.Delete(ctx, user.ID) {
		t.Fatalf("second delete must report not found")
	}
	if _, err := reg.FindByUsername(ctx, "dave"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("username index must be cleared, got %v", err)
	}

	// Username is reusable once both index entries are gone.
	if _, err := reg.Create(ctx, domain.RoleCityManager, ports.CreateUserInput{Username: "dave", Password: "pw123456"}); err != nil {
		t.Fatalf("recreate after delete failed: %v", err)
	}
}

func TestUserRegistry_RecordLogin(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	user, err := reg.Create(ctx, domain.RoleCityManager, ports.CreateUserInput{Username: "erin", Password: "pw123456"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	reg.RecordLogin(ctx, "erin")
	found, err := reg.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.LastLogin == nil {
		t.Fatalf("last login must be stamped")
	}

	// Unknown username is a silent no-op.
	reg.RecordLogin(ctx, "ghost")
}

func TestUserRegistry_ListSnapshot(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	if _, err := reg.Create(ctx, domain.RoleCityManager, ports.CreateUserInput{
		Username: "frank", Password: "pw123456", Name: "Frank",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	snapshot := reg.List(ctx)
	if len(snapshot) != 1 {
		t.Fatalf("expected one user, got %d", len(snapshot))
	}

	name := "Renamed"
	if _, err := reg.Update(ctx, snapshot[0].ID, ports.UpdateUserInput{Name: &name}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if snapshot[0].Name != "Frank" {
		t.Fatalf("snapshot must not observe later mutations")
	}
}

func TestUserRegistry_SeedDemoUsers(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	if err := reg.SeedDemoUsers(ctx); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if got := len(reg.List(ctx)); got != 4 {
		t.Fatalf("expected 4 seeded users, got %d", got)
	}

	admin, err := reg.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("admin must be seeded: %v", err)
	}
	if admin.Role != domain.RoleGovernmentAdmin {
		t.Fatalf("admin role = %s", admin.Role)
	}
	if !reg.VerifyCredentials(admin, "admin123") {
		t.Fatalf("seeded admin password must verify")
	}

	// The id sequence continues past the seed set.
	next, err := reg.Create(ctx, domain.RoleServiceProviderUser, ports.CreateUserInput{Username: "fifth", Password: "pw123456"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if next.ID != 5 {
		t.Fatalf("expected id 5 after seed, got %d", next.ID)
	}
}
