package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"
	"time"

	"vetco/internal/domain/animals"
	"vetco/internal/domain/healthrecords"
	"vetco/internal/domain/users"
)

// Driver stub que captura los argumentos que database/sql envía al backend.
// Las columnas de texto opcionales son NOT NULL DEFAULT '' en las migraciones,
// así que un INSERT jamás debe mandar NULL en ellas.

type capturedExec struct {
	query string
	args  []driver.NamedValue
}

type recordingConn struct {
	mu    sync.Mutex
	execs []capturedExec
}

func (c *recordingConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepare no soportado en el stub")
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) {
	return nil, errors.New("begin no soportado en el stub")
}

func (c *recordingConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.execs = append(c.execs, capturedExec{query: query, args: args})
	return driver.RowsAffected(1), nil
}

func (c *recordingConn) lastExec(t *testing.T) capturedExec {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.execs) == 0 {
		t.Fatal("no se ejecutó ningún statement")
	}
	return c.execs[len(c.execs)-1]
}

type recordingDriver struct {
	conn *recordingConn
}

func (d *recordingDriver) Open(name string) (driver.Conn, error) { return d.conn, nil }

var sharedConn = &recordingConn{}

func init() {
	sql.Register("recording", &recordingDriver{conn: sharedConn})
}

func openRecordingDB(t *testing.T) (*sql.DB, *recordingConn) {
	t.Helper()
	db, err := sql.Open("recording", "")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	sharedConn.mu.Lock()
	sharedConn.execs = nil
	sharedConn.mu.Unlock()
	return db, sharedConn
}

func argString(t *testing.T, args []driver.NamedValue, i int) string {
	t.Helper()
	if i >= len(args) {
		t.Fatalf("el statement recibió %d argumentos, se esperaba al menos %d", len(args), i+1)
	}
	s, ok := args[i].Value.(string)
	if !ok {
		t.Fatalf("argumento %d: se esperaba string, llegó %T (%v)", i+1, args[i].Value, args[i].Value)
	}
	return s
}

func TestUsersRepoCreateSendsEmptyStringsNotNull(t *testing.T) {
	db, conn := openRecordingDB(t)
	repo := NewUsersRepo(db)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	err := repo.Create(context.Background(), users.User{
		ID:        "7f1d0a6e-0000-0000-0000-000000000001",
		Email:     "ana@example.com",
		FullName:  "Ana García",
		Role:      users.RoleFarmer,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	exec := conn.lastExec(t)
	if len(exec.args) != 11 {
		t.Fatalf("INSERT users con %d argumentos, se esperaban 11", len(exec.args))
	}
	// phone, address, organization, bio, avatar_url: posiciones $5..$9
	for i := 4; i <= 8; i++ {
		if got := argString(t, exec.args, i); got != "" {
			t.Fatalf("argumento %d: se esperaba cadena vacía, llegó %q", i+1, got)
		}
	}
}

func TestAnimalsRepoCreateNullability(t *testing.T) {
	db, conn := openRecordingDB(t)
	repo := NewAnimalsRepo(db)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	err := repo.Create(context.Background(), animals.Animal{
		ID:           "7f1d0a6e-0000-0000-0000-000000000002",
		FarmerID:     "7f1d0a6e-0000-0000-0000-000000000001",
		Name:         "Luna",
		Type:         "cow",
		HealthStatus: animals.StatusHealthy,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	exec := conn.lastExec(t)
	if len(exec.args) != 13 {
		t.Fatalf("INSERT animals con %d argumentos, se esperaban 13", len(exec.args))
	}
	// breed ($5), gender ($8), vaccination_status ($10), description ($11):
	// columnas NOT NULL, deben viajar como cadena vacía.
	for _, i := range []int{4, 7, 9, 10} {
		if got := argString(t, exec.args, i); got != "" {
			t.Fatalf("argumento %d: se esperaba cadena vacía, llegó %q", i+1, got)
		}
	}
	// age ($6) y weight ($7) sí admiten NULL cuando no se informan.
	for _, i := range []int{5, 6} {
		if exec.args[i].Value != nil {
			t.Fatalf("argumento %d: se esperaba NULL, llegó %v", i+1, exec.args[i].Value)
		}
	}
}

func TestHealthRecordsRepoCreateSendsEmptyStringsNotNull(t *testing.T) {
	db, conn := openRecordingDB(t)
	repo := NewHealthRecordsRepo(db)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	err := repo.Create(context.Background(), healthrecords.HealthRecord{
		ID:         "7f1d0a6e-0000-0000-0000-000000000003",
		AnimalID:   "7f1d0a6e-0000-0000-0000-000000000002",
		Title:      "Vacunación anual",
		RecordDate: now,
		CreatedAt:  now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	exec := conn.lastExec(t)
	if len(exec.args) != 9 {
		t.Fatalf("INSERT health_records con %d argumentos, se esperaban 9", len(exec.args))
	}
	// description ($4), treatment ($5), vet_name ($6)
	for _, i := range []int{3, 4, 5} {
		if got := argString(t, exec.args, i); got != "" {
			t.Fatalf("argumento %d: se esperaba cadena vacía, llegó %q", i+1, got)
		}
	}
	// cost ($7) es NULLable.
	if exec.args[6].Value != nil {
		t.Fatalf("cost: se esperaba NULL, llegó %v", exec.args[6].Value)
	}
}
