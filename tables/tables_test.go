package tables

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainative/zerodb-go/internal/testutil"
	"github.com/ainative/zerodb-go/testing/mocks"
	"github.com/ainative/zerodb-go/validation"
)

const basePath = "/api/v1/zerodb/" + testutil.ProjectID + "/database/tables"

func newService() (*Service, *mocks.MockRequester) {
	m := &mocks.MockRequester{}
	return NewService(m, testutil.Validator()), m
}

func TestCreateTable(t *testing.T) {
	svc, m := newService()
	m.ExpectCall("POST", basePath).Return(Table{TableID: "t1", TableName: "users"}, nil)

	table, err := svc.CreateTable(context.Background(), CreateTableRequest{
		ProjectID: testutil.ProjectID,
		TableName: "users",
		Schema:    Schema{"email": {Type: "string"}, "age": {Type: "number", Nullable: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", table.TableID)

	body, err := mocks.BodyAs(m.LastRequest())
	require.NoError(t, err)
	assert.Equal(t, "users", body["table_name"])
	assert.Contains(t, body["schema_definition"], "email")
}

func TestCreateTableRejectsUnknownColumnType(t *testing.T) {
	svc, m := newService()
	_, err := svc.CreateTable(context.Background(), CreateTableRequest{
		ProjectID: testutil.ProjectID,
		TableName: "users",
		Schema:    Schema{"email": {Type: "varchar"}},
	})
	assert.ErrorIs(t, err, validation.ErrInvalidRequest)
	assert.Empty(t, m.Requests())
}

func TestListAndGetTable(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()
	m.ExpectCall("GET", basePath).Return(ListTablesResponse{TotalCount: 1, Tables: []TableSummary{{TableName: "users"}}}, nil)
	m.ExpectCall("GET", basePath+"/users").Return(map[string]any{
		"table":   map[string]any{"table_name": "users", "row_count": 4, "storage_bytes": 1024},
		"indexes": []string{"email"},
		"status":  "active",
	}, nil)

	list, err := svc.ListTables(ctx, testutil.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)

	details, err := svc.GetTable(ctx, testutil.ProjectID, "users")
	require.NoError(t, err)
	assert.Equal(t, "users", details.Table.TableName)
	assert.EqualValues(t, 4, details.Table.RowCount)
	assert.EqualValues(t, 1024, details.Table.StorageBytes)
	assert.Equal(t, []string{"email"}, details.Indexes)

	_, err = svc.ListTables(ctx, testutil.InvalidProjectID)
	assert.ErrorIs(t, err, validation.ErrInvalidRequest)
}

func TestDestructiveCallsRequireConfirm(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()

	_, err := svc.DeleteTable(ctx, DeleteTableRequest{ProjectID: testutil.ProjectID, TableName: "users"})
	assert.ErrorIs(t, err, validation.ErrConfirmationRequired)

	_, err = svc.DeleteRows(ctx, DeleteRowsRequest{ProjectID: testutil.ProjectID, TableName: "users", Filters: map[string]any{"age": 3}})
	assert.ErrorIs(t, err, validation.ErrConfirmationRequired)
	assert.Empty(t, m.Requests())
}

func TestDeleteTableConfirmed(t *testing.T) {
	svc, m := newService()
	m.ExpectCall("DELETE", basePath+"/users").Return(DeleteTableResponse{Status: "deleted", RowsDeleted: 7}, nil)

	out, err := svc.DeleteTable(context.Background(), DeleteTableRequest{ProjectID: testutil.ProjectID, TableName: "users", Confirm: true})
	require.NoError(t, err)
	assert.EqualValues(t, 7, out.RowsDeleted)
	assert.Nil(t, m.LastRequest().Body)
}

func TestDeleteRowsSendsFilterBody(t *testing.T) {
	svc, m := newService()
	m.ExpectCall("DELETE", basePath+"/users/rows").Return(DeleteRowsResponse{DeletedCount: 2, Status: "success"}, nil)

	out, err := svc.DeleteRows(context.Background(), DeleteRowsRequest{
		ProjectID: testutil.ProjectID, TableName: "users", Filters: map[string]any{"active": false}, Confirm: true,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.DeletedCount)

	body, err := mocks.BodyAs(m.LastRequest())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"filters": map[string]any{"active": false}}, body)
}

func TestRowOperations(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()
	m.ExpectCall("POST", basePath+"/users/rows").Return(InsertRowsResponse{InsertedCount: 2, InsertedIDs: []string{"a", "b"}}, nil)
	m.ExpectCall("POST", basePath+"/users/rows/query").Return(QueryRowsResponse{TotalCount: 1, Rows: []Row{{RowID: "a"}}}, nil)
	m.ExpectCall("PUT", basePath+"/users/rows").Return(UpdateRowsResponse{UpdatedCount: 1, Status: "success"}, nil)

	ins, err := svc.InsertRows(ctx, InsertRowsRequest{
		ProjectID: testutil.ProjectID, TableName: "users",
		Rows: []map[string]any{{"email": "a@x"}, {"email": "b@x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, ins.InsertedCount)

	q, err := svc.QueryRows(ctx, QueryRowsRequest{ProjectID: testutil.ProjectID, TableName: "users"})
	require.NoError(t, err)
	assert.Len(t, q.Rows, 1)
	body, err := mocks.BodyAs(m.LastRequest())
	require.NoError(t, err)
	assert.EqualValues(t, DefaultQueryLimit, body["limit"])
	assert.EqualValues(t, 0, body["offset"])

	up, err := svc.UpdateRows(ctx, UpdateRowsRequest{
		ProjectID: testutil.ProjectID, TableName: "users",
		Filters: map[string]any{"email": "a@x"}, Updates: map[string]any{"active": true},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, up.UpdatedCount)
	m.AssertExpectations(t)

	_, err = svc.InsertRows(ctx, InsertRowsRequest{ProjectID: testutil.ProjectID, TableName: "users"})
	assert.ErrorIs(t, err, validation.ErrInvalidRequest)
}

func TestGetTableRequiresName(t *testing.T) {
	svc, m := newService()
	_, err := svc.GetTable(context.Background(), testutil.ProjectID, "")
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"table_name"}, verr.Fields())
	assert.Empty(t, m.Requests())
}
