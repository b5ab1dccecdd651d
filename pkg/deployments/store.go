// Package deployments records deployed contract addresses per network in a
// local SQLite database so later commands can find the latest pool and
// tokens without re-deploying.
package deployments

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "deployments.db"

const (
	RoleTokenA = "token-a"
	RoleTokenB = "token-b"
	RolePool   = "pool"
)

var ErrNotFound = errors.New("deployment not found")

//go:embed schema.sql
var schemaSQL string

type Run struct {
	ID        string
	Network   string
	ChainID   int64
	Deployer  string
	CreatedAt time.Time
	Records   []Record
}

type Record struct {
	RunID       string
	Network     string
	ChainID     int64
	Deployer    string
	CreatedAt   time.Time
	Role        string
	Contract    string
	Name        string
	Symbol      string
	Address     string
	TxHash      string
	BlockNumber uint64
}

type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open creates dataDir if needed and opens the database inside it.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	if strings.TrimSpace(dataDir) == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(dataDir, FileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file path.
func (store *Store) Path() string {
	return store.path
}

func (store *Store) Close() error {
	return store.db.Close()
}

// Save writes the run and its records in one transaction. A missing ID is
// filled with a UUIDv7 and a zero CreatedAt with the current time.
func (store *Store) Save(ctx context.Context, run Run) (Run, error) {
	if err := validateRun(run); err != nil {
		return Run{}, err
	}
	if run.ID == "" {
		run.ID = generateID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = store.now()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, network, chain_id, deployer, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		run.Network,
		run.ChainID,
		run.Deployer,
		run.CreatedAt.UnixNano(),
	); err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}

	for index := range run.Records {
		record := &run.Records[index]
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO contracts (run_id, role, contract, name, symbol, address, tx_hash, block_number)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			record.Role,
			record.Contract,
			record.Name,
			record.Symbol,
			record.Address,
			record.TxHash,
			int64(record.BlockNumber),
		); err != nil {
			return Run{}, fmt.Errorf("failed to insert %s record: %w", record.Role, err)
		}
		record.RunID = run.ID
		record.Network = run.Network
		record.ChainID = run.ChainID
		record.Deployer = run.Deployer
		record.CreatedAt = run.CreatedAt
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("failed to commit run: %w", err)
	}
	return run, nil
}

// Latest returns the newest record for role on network.
func (store *Store) Latest(ctx context.Context, network string, role string) (Record, error) {
	rows, err := store.query(ctx, `WHERE r.network = ? AND c.role = ? ORDER BY r.created_at DESC, r.run_id DESC LIMIT 1`, network, role)
	if err != nil {
		return Record{}, err
	}
	if len(rows) == 0 {
		return Record{}, fmt.Errorf("%s on %s: %w", role, network, ErrNotFound)
	}
	return rows[0], nil
}

// LatestRun returns the newest run on network with all of its records.
func (store *Store) LatestRun(ctx context.Context, network string) (Run, error) {
	return store.latestRun(ctx, network, "")
}

// LatestRunWith returns the newest run on network that recorded role. Runs
// saved after a partial deploy are skipped when they lack role.
func (store *Store) LatestRunWith(ctx context.Context, network string, role string) (Run, error) {
	if strings.TrimSpace(role) == "" {
		return Run{}, fmt.Errorf("role is required")
	}
	return store.latestRun(ctx, network, role)
}

func (store *Store) latestRun(ctx context.Context, network string, role string) (Run, error) {
	var run Run
	var createdAt int64
	err := store.db.QueryRowContext(
		ctx,
		`SELECT r.run_id, r.network, r.chain_id, r.deployer, r.created_at FROM runs r
		 WHERE r.network = ?
		   AND (? = '' OR EXISTS (SELECT 1 FROM contracts c WHERE c.run_id = r.run_id AND c.role = ?))
		 ORDER BY r.created_at DESC, r.run_id DESC LIMIT 1`,
		network,
		role,
		role,
	).Scan(&run.ID, &run.Network, &run.ChainID, &run.Deployer, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		if role != "" {
			return Run{}, fmt.Errorf("run with %s on %s: %w", role, network, ErrNotFound)
		}
		return Run{}, fmt.Errorf("run on %s: %w", network, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to query latest run: %w", err)
	}
	run.CreatedAt = time.Unix(0, createdAt).UTC()

	run.Records, err = store.query(ctx, `WHERE r.run_id = ? ORDER BY c.role`, run.ID)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// Address returns the address recorded for role in the run.
func (run Run) Address(role string) (string, bool) {
	for _, record := range run.Records {
		if record.Role == role {
			return record.Address, true
		}
	}
	return "", false
}

// List returns every record on network, newest run first. An empty network
// lists all networks.
func (store *Store) List(ctx context.Context, network string) ([]Record, error) {
	if network == "" {
		return store.query(ctx, `ORDER BY r.created_at DESC, r.run_id DESC, c.role`)
	}
	return store.query(ctx, `WHERE r.network = ? ORDER BY r.created_at DESC, r.run_id DESC, c.role`, network)
}

func (store *Store) query(ctx context.Context, clause string, args ...any) ([]Record, error) {
	rows, err := store.db.QueryContext(
		ctx,
		`SELECT r.run_id, r.network, r.chain_id, r.deployer, r.created_at,
		        c.role, c.contract, c.name, c.symbol, c.address, c.tx_hash, c.block_number
		 FROM contracts c JOIN runs r ON r.run_id = c.run_id `+clause,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query deployments: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var record Record
		var createdAt int64
		var blockNumber int64
		if err := rows.Scan(
			&record.RunID,
			&record.Network,
			&record.ChainID,
			&record.Deployer,
			&createdAt,
			&record.Role,
			&record.Contract,
			&record.Name,
			&record.Symbol,
			&record.Address,
			&record.TxHash,
			&blockNumber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deployment: %w", err)
		}
		record.CreatedAt = time.Unix(0, createdAt).UTC()
		record.BlockNumber = uint64(blockNumber)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deployments: %w", err)
	}
	return records, nil
}

func validateRun(run Run) error {
	if strings.TrimSpace(run.Network) == "" {
		return fmt.Errorf("run network is required")
	}
	if len(run.Records) == 0 {
		return fmt.Errorf("run must contain at least one record")
	}
	seen := make(map[string]bool, len(run.Records))
	for _, record := range run.Records {
		switch record.Role {
		case RoleTokenA, RoleTokenB, RolePool:
		default:
			return fmt.Errorf("unknown role %q", record.Role)
		}
		if seen[record.Role] {
			return fmt.Errorf("duplicate role %q", record.Role)
		}
		seen[record.Role] = true
		if strings.TrimSpace(record.Address) == "" {
			return fmt.Errorf("%s address is required", record.Role)
		}
	}
	return nil
}

func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
