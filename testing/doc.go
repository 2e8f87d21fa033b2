// Package testing holds test doubles for code built on the ZeroDB client.
//
// # Mocks
//
// The mocks subpackage provides a testify-based http.Requester. Resource
// services accept any Requester, so unit tests can assert on the exact
// method, path, query and body a call produces without a network:
//
//	m := &mocks.MockRequester{}
//	m.ExpectCall("GET", "/api/v1/zerodb/projects").Return(projects.ListResponse{}, nil)
//	svc := projects.NewService(m, nil)
//
// # Fake API
//
// The fakeapi subpackage runs an in-process echo server standing in for the
// ZeroDB API. It records every request, serves canned JSON responses or
// response sequences, and can emit otelecho server spans so tests can check
// trace propagation end to end:
//
//	api := fakeapi.New(t)
//	api.JSON("GET", "/api/v1/admin/health", 200, map[string]string{"status": "ok"})
//	client, _ := zerodb.New(zerodb.WithAPIKey("k"), zerodb.WithBaseURL(api.URL()))
package testing
