package appfirst

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/metal-toolbox/afsync/internal/app"
	"github.com/metal-toolbox/afsync/internal/model"
	"github.com/metal-toolbox/afsync/internal/rest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tagsJSON = `{
  "data": [
    {"id": 1, "name": "stemcell", "servers": [42, 43]},
    {"id": 2, "name": "db", "servers": [7]}
  ],
  "pagination": {"count": 2}
}`

const serverJSON = `{
  "id": 42,
  "hostname": "h1",
  "nickname": "old",
  "description": "",
  "os": "Linux",
  "capacity_mem": 4096,
  "alerts": [1, 2]
}`

func newTestClient(url string) *Client {
	return New(&app.AppFirstOptions{APIRoot: url + "/api", User: "ops", APIKey: "key"}, 0, logrus.New())
}

func TestServerTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/server_tags/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		user, key, _ := r.BasicAuth()
		assert.Equal(t, "ops", user)
		assert.Equal(t, "key", key)

		_, _ = w.Write([]byte(tagsJSON))
	}))
	defer srv.Close()

	tags, err := newTestClient(srv.URL).ServerTags(context.Background())
	require.NoError(t, err)

	expected := []model.Tag{
		{ID: 1, Name: "stemcell", Servers: []int64{42, 43}},
		{ID: 2, Name: "db", Servers: []int64{7}},
	}
	assert.Equal(t, expected, tags)
}

func TestServerAndUpdate(t *testing.T) {
	var put map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/servers/42/", r.URL.Path)

		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(serverJSON))
		case http.MethodPut:
			b, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.NoError(t, json.Unmarshal(b, &put))
			_, _ = w.Write(b)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	server, err := c.Server(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), server.ID)
	assert.Equal(t, "h1", server.Hostname)
	assert.Equal(t, "old", server.Nickname)
	assert.Equal(t, "", server.Description)
	assert.Equal(t, srv.URL+"/api/servers/42/", c.ServerURL(42))

	server.Nickname = "worker/2"
	server.Description = " "

	require.NoError(t, c.UpdateServer(context.Background(), server))

	// the record is sent back whole
	assert.Equal(t, "worker/2", put["nickname"])
	assert.Equal(t, " ", put["description"])
	assert.Equal(t, "h1", put["hostname"])
	assert.Equal(t, "Linux", put["os"])
	assert.Equal(t, float64(4096), put["capacity_mem"])
	assert.Equal(t, float64(42), put["id"])
	assert.Equal(t, []interface{}{float64(1), float64(2)}, put["alerts"])
}

func TestRequestErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"description": ["This field may not be blank."]}`))

			return
		}

		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.ServerTags(context.Background())
	assert.ErrorIs(t, err, rest.ErrRequest)

	_, err = c.Server(context.Background(), 42)
	assert.ErrorIs(t, err, rest.ErrRequest)

	err = c.UpdateServer(context.Background(), &model.Server{ID: 42})
	assert.ErrorIs(t, err, rest.ErrRequest)
	assert.Contains(t, err.Error(), "may not be blank")
}
