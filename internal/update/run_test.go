package update

import (
	"context"
	"errors"
	"net/http"
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/updatedns/updatedns/internal/models"
	"github.com/updatedns/updatedns/internal/persistence"
	"github.com/updatedns/updatedns/internal/provider"
	providererrors "github.com/updatedns/updatedns/internal/provider/errors"
	"github.com/updatedns/updatedns/internal/update/mock_update"
)

var testDomains = []models.Domain{{
	Name: "example.com",
	Records: []models.RecordSpec{
		{Name: "www.example.com", Type: "A"},
	},
}}

type runnerMocks struct {
	fetcher        *mock_update.MockPublicIPFetcher
	persistentLog  *mock_update.MockPersistentLog
	providerClient *mock_update.MockProviderClient
	notifier       *mock_update.MockNotifier
}

func newTestRunner(t *testing.T, domains []models.Domain,
	timeNow func() time.Time) (runner *Runner, mocks runnerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mocks = runnerMocks{
		fetcher:        mock_update.NewMockPublicIPFetcher(ctrl),
		persistentLog:  mock_update.NewMockPersistentLog(ctrl),
		providerClient: mock_update.NewMockProviderClient(ctrl),
		notifier:       mock_update.NewMockNotifier(ctrl),
	}

	logger := mock_update.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	runner = NewRunner(domains, mocks.fetcher, mocks.persistentLog,
		mocks.providerClient, &http.Client{}, logger, mocks.notifier, timeNow)
	return runner, mocks
}

func Test_Runner_Run_detectionError(t *testing.T) {
	t.Parallel()

	runner, mocks := newTestRunner(t, testDomains, time.Now)
	errDummy := errors.New("dummy")
	mocks.fetcher.EXPECT().IP4(gomock.Any()).
		Return(netip.Addr{}, errDummy)

	err := runner.Run(context.Background())

	require.ErrorIs(t, err, errDummy)
	assert.EqualError(t, err, "detecting public IP address: dummy")
}

func Test_Runner_Run_noChange(t *testing.T) {
	t.Parallel()

	runner, mocks := newTestRunner(t, testDomains, time.Now)
	publicIP := netip.AddrFrom4([4]byte{203, 0, 113, 5})
	mocks.fetcher.EXPECT().IP4(gomock.Any()).Return(publicIP, nil)
	mocks.persistentLog.EXPECT().LastIP().Return(publicIP, true, nil)
	// no Records, UpdateRecord, StoreNewIP nor Notify call expected

	err := runner.Run(context.Background())

	assert.NoError(t, err)
}

func Test_Runner_Run_firstRun(t *testing.T) {
	t.Parallel()

	timeNow := func() time.Time {
		return time.Date(2023, time.June, 2, 23, 59, 59, 0, time.UTC)
	}
	runner, mocks := newTestRunner(t, testDomains, timeNow)

	publicIP := netip.AddrFrom4([4]byte{203, 0, 113, 9})
	mocks.fetcher.EXPECT().IP4(gomock.Any()).Return(publicIP, nil)
	// no address logged yet forces an update
	mocks.persistentLog.EXPECT().LastIP().Return(netip.Addr{}, false, nil)
	mocks.providerClient.EXPECT().
		Records(gomock.Any(), gomock.Any(), "example.com").
		Return([]provider.Record{
			{ID: 123, Name: "www.example.com", Type: "A"},
		}, nil)
	mocks.providerClient.EXPECT().
		UpdateRecord(gomock.Any(), gomock.Any(), "example.com", 123, "203.0.113.9").
		Return(nil)
	mocks.persistentLog.EXPECT().StoreNewIP(publicIP, timeNow()).Return(nil)
	mocks.notifier.EXPECT().Notify("Public IP address changed to 203.0.113.9")

	err := runner.Run(context.Background())

	assert.NoError(t, err)
}

func Test_Runner_Run_change(t *testing.T) {
	t.Parallel()

	timeNow := func() time.Time {
		return time.Date(2023, time.June, 2, 23, 59, 59, 0, time.UTC)
	}
	runner, mocks := newTestRunner(t, testDomains, timeNow)

	publicIP := netip.AddrFrom4([4]byte{203, 0, 113, 9})
	lastIP := netip.AddrFrom4([4]byte{203, 0, 113, 5})
	mocks.fetcher.EXPECT().IP4(gomock.Any()).Return(publicIP, nil)
	mocks.persistentLog.EXPECT().LastIP().Return(lastIP, true, nil)
	mocks.providerClient.EXPECT().
		Records(gomock.Any(), gomock.Any(), "example.com").
		Return([]provider.Record{
			{ID: 50, Name: "example.com", Type: "A"},
			{ID: 123, Name: "www.example.com", Type: "A"},
		}, nil)
	mocks.providerClient.EXPECT().
		UpdateRecord(gomock.Any(), gomock.Any(), "example.com", 123, "203.0.113.9").
		Return(nil)
	mocks.persistentLog.EXPECT().StoreNewIP(publicIP, timeNow()).Return(nil)
	mocks.notifier.EXPECT().Notify("Public IP address changed to 203.0.113.9")

	err := runner.Run(context.Background())

	assert.NoError(t, err)
}

func Test_Runner_Run_recordNotFound(t *testing.T) {
	t.Parallel()

	runner, mocks := newTestRunner(t, testDomains, time.Now)

	publicIP := netip.AddrFrom4([4]byte{203, 0, 113, 9})
	mocks.fetcher.EXPECT().IP4(gomock.Any()).Return(publicIP, nil)
	mocks.persistentLog.EXPECT().LastIP().Return(netip.Addr{}, false, nil)
	mocks.providerClient.EXPECT().
		Records(gomock.Any(), gomock.Any(), "example.com").
		Return([]provider.Record{
			{ID: 70, Name: "other.example.com", Type: "A"},
		}, nil)
	// no UpdateRecord nor StoreNewIP call expected

	err := runner.Run(context.Background())

	require.ErrorIs(t, err, providererrors.ErrRecordNotFound)
	assert.EqualError(t, err, "updating domain example.com: "+
		`record not found: no A record named "www.example.com"`)
}

func Test_Runner_Run_failFast(t *testing.T) {
	t.Parallel()

	domains := []models.Domain{{
		Name: "example.com",
		Records: []models.RecordSpec{
			{Name: "www.example.com", Type: "A"},
			{Name: "*.example.com", Type: "A"},
		},
	}}
	runner, mocks := newTestRunner(t, domains, time.Now)

	publicIP := netip.AddrFrom4([4]byte{203, 0, 113, 9})
	mocks.fetcher.EXPECT().IP4(gomock.Any()).Return(publicIP, nil)
	mocks.persistentLog.EXPECT().LastIP().Return(netip.Addr{}, false, nil)
	mocks.providerClient.EXPECT().
		Records(gomock.Any(), gomock.Any(), "example.com").
		Return([]provider.Record{
			{ID: 123, Name: "www.example.com", Type: "A"},
			{ID: 124, Name: "*.example.com", Type: "A"},
		}, nil)
	errDummy := errors.New("dummy")
	// the first record fails so the second is never attempted
	// and the new address is not logged
	mocks.providerClient.EXPECT().
		UpdateRecord(gomock.Any(), gomock.Any(), "example.com", 123, "203.0.113.9").
		Return(errDummy).
		Times(1)

	err := runner.Run(context.Background())

	require.ErrorIs(t, err, errDummy)
	assert.EqualError(t, err, "updating domain example.com: "+
		"updating A record www.example.com: dummy")
}

func Test_Runner_Run_endToEnd(t *testing.T) {
	t.Parallel()

	logFilepath := filepath.Join(t.TempDir(), "ips.log")
	err := os.WriteFile(logFilepath,
		[]byte("2023-04-01T10:00:00Z 203.0.113.5\n"), 0o600)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	fetcher := mock_update.NewMockPublicIPFetcher(ctrl)
	providerClient := mock_update.NewMockProviderClient(ctrl)
	notifier := mock_update.NewMockNotifier(ctrl)
	logger := mock_update.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	publicIP := netip.AddrFrom4([4]byte{203, 0, 113, 9})
	fetcher.EXPECT().IP4(gomock.Any()).Return(publicIP, nil)
	providerClient.EXPECT().
		Records(gomock.Any(), gomock.Any(), "example.com").
		Return([]provider.Record{
			{ID: 123, Name: "www.example.com", Type: "A"},
		}, nil)
	providerClient.EXPECT().
		UpdateRecord(gomock.Any(), gomock.Any(), "example.com", 123, "203.0.113.9").
		Return(nil)
	notifier.EXPECT().Notify(gomock.Any())

	timeNow := func() time.Time {
		return time.Date(2023, time.June, 2, 23, 59, 59, 0, time.UTC)
	}
	runner := NewRunner(testDomains, fetcher, persistence.NewLog(logFilepath),
		providerClient, &http.Client{}, logger, notifier, timeNow)

	err = runner.Run(context.Background())

	require.NoError(t, err)
	data, err := os.ReadFile(logFilepath)
	require.NoError(t, err)
	assert.Equal(t, "2023-04-01T10:00:00Z 203.0.113.5\n"+
		"2023-06-02T23:59:59Z 203.0.113.9\n", string(data))
}
