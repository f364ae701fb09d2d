package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // mysql driver
	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	_ "modernc.org/sqlite"             // sqlite driver
)

// Table names for run tracking.
const (
	runsTable       = "tradeoff_runs"
	runMetricsTable = "tradeoff_run_metrics"
)

// constraintColumns maps each constraint to its column in the metrics table.
var constraintColumns = []struct {
	id     schema.ConstraintID
	column string
}{
	{schema.TeamSize, "team_size"},
	{schema.Timeline, "timeline"},
	{schema.Budget, "budget"},
	{schema.Complexity, "complexity"},
	{schema.MarketRisk, "market_risk"},
	{schema.UserBase, "user_base"},
}

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	var db *sql.DB
	var err error
	driverName := driverFor(backend)

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetRunDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname?parseTime=true", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... user=... dbname=...", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createRunTables creates the run tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{runMetricsTable, getCreateRunMetricsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for tradeoff_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				session_id VARCHAR(36) NOT NULL,
				command VARCHAR(64) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_snapshots INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				session_id TEXT NOT NULL,
				command TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_snapshots INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				session_id TEXT NOT NULL,
				command TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_snapshots INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateRunMetricsQuery returns the CREATE TABLE query for tradeoff_run_metrics.
func getCreateRunMetricsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runMetricsTable, backend)

	var idType, textType, timeType, intType, realType string
	switch backend {
	case schema.MySQLBackend:
		idType, textType, timeType, intType, realType = "BIGINT", "VARCHAR(128)", "DATETIME(6)", "INT", "DOUBLE"
	case schema.PostgreSQLBackend:
		idType, textType, timeType, intType, realType = "BIGINT", "TEXT", "TIMESTAMPTZ", "INT", "DOUBLE PRECISION"
	default: // SQLite
		idType, textType, timeType, intType, realType = "INTEGER", "TEXT", "TEXT", "INTEGER", "REAL"
	}

	cols := []string{
		"run_id " + idType + " NOT NULL",
		"seq " + intType + " NOT NULL",
		"scenario_id " + textType,
		"recorded_at " + timeType + " NOT NULL",
	}
	for _, c := range constraintColumns {
		cols = append(cols, c.column+" "+intType+" NOT NULL")
	}
	for _, key := range schema.AllMetricKeys {
		cols = append(cols, string(key)+" "+realType+" NOT NULL")
	}
	cols = append(cols, "PRIMARY KEY (run_id, seq)")

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n);", quotedTableName, strings.Join(cols, ",\n\t"))
}

// runMetricsColumns returns the column list of the metrics table in insert order.
func runMetricsColumns() []string {
	cols := []string{"run_id", "seq", "scenario_id", "recorded_at"}
	for _, c := range constraintColumns {
		cols = append(cols, c.column)
	}
	for _, key := range schema.AllMetricKeys {
		cols = append(cols, string(key))
	}
	return cols
}

// BeginRun creates a new run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(sessionID, command string, startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (session_id, command, start_time, config_params) VALUES ($1, $2, $3, $4) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, sessionID, command, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (session_id, command, start_time, config_params) VALUES (?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query, sessionID, command, formatTime(startTime, rs.backend), string(configJSON))
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// RecordSnapshot stores one constraint snapshot and the metrics it produced.
func (rs *RunStoreImpl) RecordSnapshot(record schema.RunMetricsRecord) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	cols := runMetricsColumns()
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteTableName(runMetricsTable, rs.backend),
		strings.Join(cols, ", "),
		placeholders(rs.backend, len(cols)))

	args := []any{record.RunID, record.Seq, record.ScenarioID, formatTime(record.RecordedAt, rs.backend)}
	for _, c := range constraintColumns {
		v, ok := record.Snapshot[c.id]
		if !ok {
			v = schema.DefaultConstraintValue
		}
		args = append(args, v)
	}
	for _, key := range schema.AllMetricKeys {
		args = append(args, record.Metrics.Get(key))
	}

	if _, err := rs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert run snapshot: %w", err)
	}
	return nil
}

// EndRun updates the run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalSnapshots int32) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(runsTable, rs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholder(rs.backend, 1))
	row := rs.db.QueryRow(query, runID)

	startTime, err := rs.scanTime(row)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_snapshots = %s WHERE run_id = %s`,
		quotedTableName,
		placeholder(rs.backend, 1), placeholder(rs.backend, 2), placeholder(rs.backend, 3), placeholder(rs.backend, 4))

	if _, err := rs.db.Exec(updateQuery, formatTime(endTime, rs.backend), durationMs, totalSnapshots, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	return nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, rs.backend)

	// Get total runs
	row := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		row = rs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns))
		var lastRunID int64
		var lastRunRaw any
		if err := row.Scan(&lastRunID, &lastRunRaw); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastRunTime, err := parseTime(lastRunRaw)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunID = lastRunID
		status.LastRunTime = lastRunTime

		// Get oldest run time
		row = rs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns))
		oldestRunTime, err := rs.scanTime(row)
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime

		// Get total snapshots
		row = rs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_snapshots), 0) FROM %s", quotedRuns))
		if err := row.Scan(&status.TotalSnapshots); err != nil {
			return status, fmt.Errorf("failed to get total snapshots: %w", err)
		}
	}

	// Get table sizes
	for _, table := range []string{runsTable, runMetricsTable} {
		row = rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend)))
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all runs from the store.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, session_id, command, start_time, end_time, run_duration_ms, total_snapshots, config_params FROM %s ORDER BY run_id",
		quoteTableName(runsTable, rs.backend))

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord

	for rows.Next() {
		var record schema.RunRecord
		var startRaw, endRaw any
		if err := rows.Scan(&record.RunID, &record.SessionID, &record.Command, &startRaw, &endRaw,
			&record.RunDurationMs, &record.TotalSnapshots, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		startTime, err := parseTime(startRaw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		record.StartTime = startTime

		if endRaw != nil {
			endTime, err := parseTime(endRaw)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &endTime
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return results, nil
}

// GetAllRunMetrics retrieves all recorded snapshots from the store.
func (rs *RunStoreImpl) GetAllRunMetrics() ([]schema.RunMetricsRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY run_id, seq",
		strings.Join(runMetricsColumns(), ", "),
		quoteTableName(runMetricsTable, rs.backend))

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query run metrics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunMetricsRecord

	for rows.Next() {
		var record schema.RunMetricsRecord
		var scenarioID sql.NullString
		var recordedRaw any
		values := make([]int, len(constraintColumns))
		m := &record.Metrics

		dest := []any{&record.RunID, &record.Seq, &scenarioID, &recordedRaw}
		for i := range values {
			dest = append(dest, &values[i])
		}
		dest = append(dest,
			&m.Conversion, &m.Satisfaction, &m.TimeToValue, &m.ErrorRate,
			&m.UserRetention, &m.DevelopmentCost, &m.MarketShare, &m.InnovationScore)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan run metrics: %w", err)
		}

		recordedAt, err := parseTime(recordedRaw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
		}
		record.RecordedAt = recordedAt
		record.ScenarioID = scenarioID.String

		record.Snapshot = make(schema.Snapshot, len(constraintColumns))
		for i, c := range constraintColumns {
			record.Snapshot[c.id] = values[i]
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run metrics: %w", err)
	}

	return results, nil
}

// scanTime reads a single time column in the storage format of the backend.
func (rs *RunStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	var raw any
	if err := row.Scan(&raw); err != nil {
		return time.Time{}, err
	}
	return parseTime(raw)
}

// parseTime converts a scanned time column into time.Time.
// SQLite stores RFC3339Nano text; MySQL and PostgreSQL return native values.
func parseTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTimeText(v)
	case []byte:
		return parseTimeText(string(v))
	default:
		return time.Time{}, fmt.Errorf("unsupported time value %T", raw)
	}
}

// parseTimeText accepts RFC3339Nano and the MySQL DATETIME text form.
func parseTimeText(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05.999999", s)
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}

// quoteTableName quotes an identifier for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// driverFor returns the database/sql driver name of a backend.
func driverFor(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "mysql"
	case schema.PostgreSQLBackend:
		return "pgx"
	case schema.SQLiteBackend:
		return "sqlite"
	default:
		return ""
	}
}

// placeholder returns the n-th (1-based) bind variable for the backend.
func placeholder(backend schema.DatabaseBackend, n int) string {
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// placeholders returns n comma-separated bind variables.
func placeholders(backend schema.DatabaseBackend, n int) string {
	vars := make([]string, n)
	for i := range n {
		vars[i] = placeholder(backend, i+1)
	}
	return strings.Join(vars, ", ")
}
