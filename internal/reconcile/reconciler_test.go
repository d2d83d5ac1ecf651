package reconcile

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/metal-toolbox/afsync/internal/fixtures"
	"github.com/metal-toolbox/afsync/internal/model"
	"github.com/metal-toolbox/afsync/internal/rest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func serverURL(id int64) string {
	return "https://wwws.appfirst.com/api/servers/" + strconv.FormatInt(id, 10) + "/"
}

func stemcellTag(ids ...int64) []model.Tag {
	return []model.Tag{
		{Name: "db", Servers: []int64{1, 2}},
		{Name: "stemcell", Servers: ids},
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name           string
		server         *model.Server
		names          NameMap
		expectUpdate   bool
		expectedOut    string
		expectedResult Result
		expectedSent   *model.Server
	}{
		{
			"nickname differs, empty description replaced",
			&model.Server{ID: 42, Hostname: "h1", Nickname: "old", Description: ""},
			NameMap{"h1": "worker/2"},
			true,
			"Server worker/2 has been updated (" + serverURL(42) + ").\n",
			Result{Updated: 1},
			&model.Server{ID: 42, Hostname: "h1", Nickname: "worker/2", Description: " "},
		},
		{
			"nickname differs, description kept",
			&model.Server{ID: 42, Hostname: "h1", Nickname: "", Description: "front door"},
			NameMap{"h1": "router/0"},
			true,
			"Server router/0 has been updated (" + serverURL(42) + ").\n",
			Result{Updated: 1},
			&model.Server{ID: 42, Hostname: "h1", Nickname: "router/0", Description: "front door"},
		},
		{
			"nickname up to date",
			&model.Server{ID: 42, Hostname: "h1", Nickname: "worker/2", Description: ""},
			NameMap{"h1": "worker/2"},
			false,
			"Server worker/2 is up to date (" + serverURL(42) + ").\n",
			Result{UpToDate: 1},
			nil,
		},
		{
			"hostname not in mapping is skipped silently",
			&model.Server{ID: 42, Hostname: "h1", Nickname: "old", Description: ""},
			NameMap{"h9": "worker/2"},
			false,
			"",
			Result{Skipped: 1},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := fixtures.NewMockMonitor(ctrl)

			m.EXPECT().ServerTags(gomock.Any()).Return(stemcellTag(42), nil).Times(1)
			m.EXPECT().Server(gomock.Any(), int64(42)).Return(tt.server, nil).Times(1)
			m.EXPECT().ServerURL(int64(42)).Return(serverURL(42)).AnyTimes()

			var sent *model.Server

			if tt.expectUpdate {
				m.EXPECT().UpdateServer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *model.Server) error {
						sent = s
						return nil
					}).
					Times(1)
			}

			s, out := newTestSyncer(nil, m)

			result, err := s.Reconcile(context.Background(), "stemcell", tt.names)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedResult, *result)
			assert.Equal(t, tt.expectedOut, out.String())

			if tt.expectedSent == nil {
				assert.Nil(t, sent)
				return
			}

			require.NotNil(t, sent)
			assert.Equal(t, tt.expectedSent.ID, sent.ID)
			assert.Equal(t, tt.expectedSent.Hostname, sent.Hostname)
			assert.Equal(t, tt.expectedSent.Nickname, sent.Nickname)
			assert.Equal(t, tt.expectedSent.Description, sent.Description)
		})
	}
}

func TestReconcileKeepsRecordAttributes(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := fixtures.NewMockMonitor(ctrl)

	fetched := &model.Server{}
	require.NoError(t, json.Unmarshal(
		[]byte(`{"id": 42, "hostname": "h1", "nickname": "old", "description": "", "os": "Linux", "tags": [3]}`),
		fetched,
	))

	var sent *model.Server

	m.EXPECT().ServerTags(gomock.Any()).Return(stemcellTag(42), nil)
	m.EXPECT().Server(gomock.Any(), int64(42)).Return(fetched, nil)
	m.EXPECT().ServerURL(int64(42)).Return(serverURL(42))
	m.EXPECT().UpdateServer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *model.Server) error {
			sent = s
			return nil
		})

	s, _ := newTestSyncer(nil, m)

	_, err := s.Reconcile(context.Background(), "stemcell", NameMap{"h1": "worker/2"})
	require.NoError(t, err)

	b, err := json.Marshal(sent)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 42, "hostname": "h1", "nickname": "worker/2", "description": " ", "os": "Linux", "tags": [3]}`, string(b))

	// the fetched record is not mutated
	assert.Equal(t, "old", fetched.Nickname)
	assert.Equal(t, "", fetched.Description)
}

func TestReconcileDryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := fixtures.NewMockMonitor(ctrl)

	m.EXPECT().ServerTags(gomock.Any()).Return(stemcellTag(42), nil)
	m.EXPECT().Server(gomock.Any(), int64(42)).Return(&model.Server{ID: 42, Hostname: "h1", Nickname: "old"}, nil)
	m.EXPECT().ServerURL(int64(42)).Return(serverURL(42))
	m.EXPECT().UpdateServer(gomock.Any(), gomock.Any()).Times(0)

	s, out := newTestSyncer(nil, m, WithDryRun(true))

	result, err := s.Reconcile(context.Background(), "stemcell", NameMap{"h1": "worker/2"})
	require.NoError(t, err)
	assert.Equal(t, Result{WouldUpdate: 1}, *result)
	assert.Equal(t, "Server worker/2 would be updated ("+serverURL(42)+").\n", out.String())
}

func TestReconcileUnknownTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := fixtures.NewMockMonitor(ctrl)

	m.EXPECT().ServerTags(gomock.Any()).Return(stemcellTag(42), nil)

	s, out := newTestSyncer(nil, m)

	result, err := s.Reconcile(context.Background(), "collectors", NameMap{"h1": "worker/2"})
	require.NoError(t, err)
	assert.Equal(t, Result{}, *result)
	assert.Empty(t, out.String())
}

func TestReconcileAbortsOnError(t *testing.T) {
	reqErr := &rest.RequestError{API: "appfirst", StatusCode: 500, Status: "500 Internal Server Error"}

	tests := []struct {
		name           string
		setup          func(m *fixtures.MockMonitor)
		expectedResult Result
	}{
		{
			"tag listing fails",
			func(m *fixtures.MockMonitor) {
				m.EXPECT().ServerTags(gomock.Any()).Return(nil, reqErr)
			},
			Result{},
		},
		{
			"second server fetch fails, third is never fetched",
			func(m *fixtures.MockMonitor) {
				m.EXPECT().ServerTags(gomock.Any()).Return(stemcellTag(41, 42, 43), nil)
				m.EXPECT().ServerURL(gomock.Any()).Return("").AnyTimes()
				m.EXPECT().Server(gomock.Any(), int64(41)).
					Return(&model.Server{ID: 41, Hostname: "h1", Nickname: "worker/2"}, nil)
				m.EXPECT().Server(gomock.Any(), int64(42)).Return(nil, reqErr)
			},
			Result{UpToDate: 1},
		},
		{
			"update fails",
			func(m *fixtures.MockMonitor) {
				m.EXPECT().ServerTags(gomock.Any()).Return(stemcellTag(42, 43), nil)
				m.EXPECT().ServerURL(gomock.Any()).Return("").AnyTimes()
				m.EXPECT().Server(gomock.Any(), int64(42)).
					Return(&model.Server{ID: 42, Hostname: "h1", Nickname: "old"}, nil)
				m.EXPECT().UpdateServer(gomock.Any(), gomock.Any()).Return(reqErr)
			},
			Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := fixtures.NewMockMonitor(ctrl)
			tt.setup(m)

			s, _ := newTestSyncer(nil, m)

			result, err := s.Reconcile(context.Background(), "stemcell", NameMap{"h1": "worker/2"})
			assert.ErrorIs(t, err, rest.ErrRequest)

			var got *rest.RequestError
			require.True(t, errors.As(err, &got))
			assert.Equal(t, 500, got.StatusCode)
			assert.Equal(t, tt.expectedResult, *result)
		})
	}
}

// memMonitor is an in memory monitoring platform, updates are applied to the stored records.
type memMonitor struct {
	tags    []model.Tag
	servers map[int64]*model.Server
	updates int
}

func (m *memMonitor) ServerTags(_ context.Context) ([]model.Tag, error) {
	return m.tags, nil
}

func (m *memMonitor) Server(_ context.Context, id int64) (*model.Server, error) {
	s, ok := m.servers[id]
	if !ok {
		return nil, &rest.RequestError{API: "appfirst", StatusCode: 404, Status: "404 Not Found"}
	}

	c := *s

	return &c, nil
}

func (m *memMonitor) UpdateServer(_ context.Context, server *model.Server) error {
	c := *server
	m.servers[server.ID] = &c
	m.updates++

	return nil
}

func (m *memMonitor) ServerURL(id int64) string {
	return serverURL(id)
}

func TestRunIdempotent(t *testing.T) {
	o := fixtures.NewMockOrchestrator(t)
	o.On("Deployments", mock.Anything).Return(fixtures.Deployments, nil).Twice()
	o.On("DeploymentVMs", mock.Anything, "cf").Return(fixtures.VMsCF, nil).Twice()
	o.On("DeploymentVMs", mock.Anything, "logs").Return(fixtures.VMsLogs, nil).Twice()

	m := &memMonitor{
		tags: stemcellTag(42, 43, 44),
		servers: map[int64]*model.Server{
			42: {ID: 42, Hostname: "h1", Nickname: "old", Description: ""},
			43: {ID: 43, Hostname: "h3", Nickname: "ingestor/1", Description: "logs"},
			44: {ID: 44, Hostname: "unmanaged", Nickname: "db", Description: "db"},
		},
	}

	s, out := newTestSyncer(o, m)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Deployments: 2, CanonicalNames: 3, Updated: 1, UpToDate: 1, Skipped: 1}, *result)
	assert.Equal(t, 1, m.updates)
	assert.Equal(t, "worker/2", m.servers[42].Nickname)
	assert.Equal(t, " ", m.servers[42].Description)
	assert.Equal(t, "db", m.servers[44].Nickname)

	out.Reset()

	// nothing changed since, every resolved server is reported up to date
	result, err = s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Deployments: 2, CanonicalNames: 3, UpToDate: 2, Skipped: 1}, *result)
	assert.Equal(t, 1, m.updates)
	assert.Equal(t,
		"Server worker/2 is up to date ("+serverURL(42)+").\n"+
			"Server ingestor/1 is up to date ("+serverURL(43)+").\n",
		out.String(),
	)
}

func TestRunSelectFails(t *testing.T) {
	o := fixtures.NewMockOrchestrator(t)
	o.On("Deployments", mock.Anything).
		Return(nil, &rest.RequestError{API: "bosh", StatusCode: 401, Status: "401 Unauthorized"})

	// the monitoring platform is never queried
	ctrl := gomock.NewController(t)
	m := fixtures.NewMockMonitor(ctrl)

	s, _ := newTestSyncer(o, m)

	result, err := s.Run(context.Background())
	assert.ErrorIs(t, err, rest.ErrRequest)
	assert.Nil(t, result)
}
