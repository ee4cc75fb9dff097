package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/lws/gateway/internal/model"
)

// ---------- Mock DB ----------

// mockDB implements the DB interface for testing.
type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// ---------- Mock Rows ----------

// mockRows implements pgx.Rows for testing.
// It iterates through a list of scan functions, one per row.
type mockRows struct {
	callIndex int
	scanFuncs []func(dest ...any) error
	err       error
}

func newMockRows(scanFuncs ...func(dest ...any) error) *mockRows {
	return &mockRows{scanFuncs: scanFuncs}
}

func (m *mockRows) Next() bool {
	return m.callIndex < len(m.scanFuncs)
}

func (m *mockRows) Scan(dest ...any) error {
	if m.callIndex < len(m.scanFuncs) {
		fn := m.scanFuncs[m.callIndex]
		m.callIndex++
		return fn(dest...)
	}
	return nil
}

func (m *mockRows) Err() error                                   { return m.err }
func (m *mockRows) Close()                                       {}
func (m *mockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (m *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *mockRows) RawValues() [][]byte                          { return nil }
func (m *mockRows) Values() ([]any, error)                       { return nil, nil }
func (m *mockRows) Conn() *pgx.Conn                              { return nil }

// ---------- Row fixtures ----------

func deploymentScan(d model.DeploymentDefinition) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*string)) = d.ID
		*(dest[1].(*string)) = d.TenantID
		*(dest[2].(*string)) = d.ServiceName
		*(dest[3].(*string)) = d.DeploymentName
		*(dest[4].(*string)) = string(d.WorkloadType)
		*(dest[5].(*[]int)) = d.OpenedPorts
		*(dest[6].(*int64)) = d.CreatedAt
		return nil
	}
}

func nodeScan(n model.Node) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*string)) = n.ID
		*(dest[1].(*string)) = n.URL
		*(dest[2].(*string)) = n.Key
		*(dest[3].(*string)) = n.Nickname
		*(dest[4].(*int)) = n.MaxCPU
		*(dest[5].(*int)) = n.MaxRAM
		*(dest[6].(*int)) = n.AllocatedCPU
		*(dest[7].(*int)) = n.AllocatedRAM
		*(dest[8].(*float64)) = n.CPUUsage
		*(dest[9].(*float64)) = n.RAMUsage
		return nil
	}
}
