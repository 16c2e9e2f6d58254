package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	pb "github.com/dmitrijs2005/transkeeper/internal/proto"
	"github.com/dmitrijs2005/transkeeper/internal/server/config"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/transkeeper/internal/server/services"
	"github.com/dmitrijs2005/transkeeper/internal/server/speech"
	"github.com/dmitrijs2005/transkeeper/internal/server/textlog"
	"github.com/dmitrijs2005/transkeeper/internal/server/translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeExport struct {
	owner string
	err   error
}

func (f *fakeExport) Export(ctx context.Context, owner string) (*services.Export, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.owner = owner
	return &services.Export{Key: "exports/" + owner + "/x.json", URL: "http://s3/x", Entries: 2}, nil
}

type testEnv struct {
	client pb.TranskeeperServiceClient
	export *fakeExport
}

func newTestEnv(t *testing.T, authRate int) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.RootAdmin = "admin"

	m, err := repomanager.NewFileRepositoryManager(t.TempDir())
	require.NoError(t, err)

	as := services.NewAccountService(m, cfg, nopLogger{})
	hs := services.NewHistoryService(m, cfg, nopLogger{})
	ts := services.NewTranslationService(
		translator.NewStubTranslator(nil),
		speech.NewSynthesizerChain(speech.NewStubSynthesizer(nil)),
		speech.NewRecognizerChain(speech.NewStubRecognizer(nil)),
		hs, textlog.New(""), time.Second, nopLogger{},
	)
	es := &fakeExport{}

	require.NoError(t, as.EnsureRootAdmin(context.Background(), "rootpw"))

	srv := NewGRPCServer(Options{SecretKey: cfg.SecretKey, AuthRatePerMinute: authRate}, nopLogger{}, as, hs, ts, es)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})

	return &testEnv{client: pb.NewTranskeeperServiceClient(conn), export: es}
}

func (e *testEnv) login(t *testing.T, username, password string) (context.Context, *pb.SessionResponse) {
	t.Helper()
	sess, err := e.client.Login(context.Background(), &pb.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, sess.AccessToken)
	return ctx, sess
}

func (e *testEnv) signup(t *testing.T, username, password string) context.Context {
	t.Helper()
	_, err := e.client.CreateAccount(context.Background(), &pb.CreateAccountRequest{Username: username, Password: password})
	require.NoError(t, err)
	ctx, _ := e.login(t, username, password)
	return ctx
}

func requireCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, status.Code(err), err.Error())
}

func TestPing(t *testing.T) {
	env := newTestEnv(t, 0)

	var header metadata.MD
	resp, err := env.client.Ping(context.Background(), &pb.PingRequest{}, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
	assert.NotEmpty(t, header.Get(common.RequestIDHeaderName))
}

func TestAccounts(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	resp, err := env.client.CreateAccount(ctx, &pb.CreateAccountRequest{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)

	_, err = env.client.CreateAccount(ctx, &pb.CreateAccountRequest{Username: "alice", Password: "other"})
	requireCode(t, err, codes.AlreadyExists)

	_, err = env.client.CreateAccount(ctx, &pb.CreateAccountRequest{Username: " ", Password: "x"})
	requireCode(t, err, codes.InvalidArgument)

	_, err = env.client.Login(ctx, &pb.LoginRequest{Username: "alice", Password: "wrong"})
	requireCode(t, err, codes.Unauthenticated)

	_, sess := env.login(t, "alice", "pw123")
	assert.Equal(t, "alice", sess.Username)
	assert.False(t, sess.IsAdmin)
	assert.NotEmpty(t, sess.RefreshToken)

	refreshed, err := env.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: sess.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, sess.RefreshToken, refreshed.RefreshToken)

	// the old token was rotated away
	_, err = env.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: sess.RefreshToken})
	requireCode(t, err, codes.Unauthenticated)

	_, err = env.client.Logout(ctx, &pb.LogoutRequest{RefreshToken: refreshed.RefreshToken})
	requireCode(t, err, codes.Unauthenticated)

	authed := metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, refreshed.AccessToken)
	_, err = env.client.Logout(authed, &pb.LogoutRequest{RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)
	_, err = env.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refreshed.RefreshToken})
	requireCode(t, err, codes.Unauthenticated)
}

func TestAccessToken(t *testing.T) {
	env := newTestEnv(t, 0)

	_, err := env.client.ListHistory(context.Background(), &pb.ListHistoryRequest{})
	requireCode(t, err, codes.Unauthenticated)

	bad := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "not-a-jwt")
	_, err = env.client.ListHistory(bad, &pb.ListHistoryRequest{})
	requireCode(t, err, codes.Unauthenticated)
}

func TestTranslateAndHistory(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := env.signup(t, "alice", "pw123")

	resp, err := env.client.Translate(ctx, &pb.TranslateRequest{Text: "hello", Source: "en", Target: "fr", Speak: true})
	require.NoError(t, err)
	assert.Equal(t, "bonjour", resp.Output)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, resp.Time)
	require.NotNil(t, resp.Audio)
	assert.Equal(t, speech.FormatWAV, resp.Audio.Format)
	assert.NotEmpty(t, resp.Audio.Data)
	assert.Regexp(t, `^translation_\d{8}_\d{6}\.wav$`, resp.AudioFile)

	list, err := env.client.ListHistory(ctx, &pb.ListHistoryRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "en", list.Entries[0].From)
	assert.Equal(t, "fr", list.Entries[0].To)
	assert.Equal(t, "hello", list.Entries[0].Input)
	assert.Equal(t, "bonjour", list.Entries[0].Output)
	assert.Equal(t, resp.Time, list.Entries[0].Time)

	_, err = env.client.Translate(ctx, &pb.TranslateRequest{Text: "", Target: "fr"})
	requireCode(t, err, codes.InvalidArgument)

	_, err = env.client.ClearHistory(ctx, &pb.ClearHistoryRequest{})
	require.NoError(t, err)
	list, err = env.client.ListHistory(ctx, &pb.ListHistoryRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Entries)
}

func TestTranscribeAndSpeak(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := env.signup(t, "alice", "pw123")

	spoken, err := env.client.Speak(ctx, &pb.SpeakRequest{Text: "hello", Lang: "en"})
	require.NoError(t, err)
	require.NotNil(t, spoken.Audio)

	tr, err := env.client.Transcribe(ctx, &pb.TranscribeRequest{Audio: spoken.Audio, Target: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "hello", tr.Transcript)
	require.NotNil(t, tr.Translation)
	assert.Equal(t, "bonjour", tr.Translation.Output)

	_, err = env.client.Transcribe(ctx, &pb.TranscribeRequest{})
	requireCode(t, err, codes.InvalidArgument)
}

func TestAdminOperations(t *testing.T) {
	env := newTestEnv(t, 0)
	alice := env.signup(t, "alice", "pw123")
	bob := env.signup(t, "bob", "pw456")
	admin, sess := env.login(t, "admin", "rootpw")
	assert.True(t, sess.IsAdmin)

	_, err := env.client.Translate(alice, &pb.TranslateRequest{Text: "hello", Source: "en", Target: "fr"})
	require.NoError(t, err)

	_, err = env.client.ListAccounts(alice, &pb.ListAccountsRequest{})
	requireCode(t, err, codes.PermissionDenied)
	_, err = env.client.ListAllHistory(alice, &pb.ListAllHistoryRequest{})
	requireCode(t, err, codes.PermissionDenied)
	_, err = env.client.PromoteToAdmin(alice, &pb.PromoteToAdminRequest{Username: "alice"})
	requireCode(t, err, codes.PermissionDenied)
	_, err = env.client.DeleteAccount(alice, &pb.DeleteAccountRequest{Username: "bob"})
	requireCode(t, err, codes.PermissionDenied)

	accounts, err := env.client.ListAccounts(admin, &pb.ListAccountsRequest{})
	require.NoError(t, err)
	names := make([]string, 0, len(accounts.Accounts))
	for _, a := range accounts.Accounts {
		names = append(names, a.Username)
	}
	assert.ElementsMatch(t, []string{"admin", "alice", "bob"}, names)

	all, err := env.client.ListAllHistory(admin, &pb.ListAllHistoryRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Histories["alice"], 1)
	assert.Empty(t, all.Histories["bob"])

	_, err = env.client.ResetHistory(admin, &pb.ResetHistoryRequest{Username: "alice"})
	require.NoError(t, err)
	list, err := env.client.ListHistory(alice, &pb.ListHistoryRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Entries)

	_, err = env.client.PromoteToAdmin(admin, &pb.PromoteToAdminRequest{Username: "bob"})
	require.NoError(t, err)
	_, err = env.client.ListAccounts(bob, &pb.ListAccountsRequest{})
	require.NoError(t, err)

	_, err = env.client.DeleteAccount(bob, &pb.DeleteAccountRequest{Username: "admin"})
	requireCode(t, err, codes.FailedPrecondition)

	_, err = env.client.DeleteAccount(admin, &pb.DeleteAccountRequest{Username: "nobody"})
	requireCode(t, err, codes.NotFound)
}

func TestDeleteAccount_Self(t *testing.T) {
	env := newTestEnv(t, 0)
	alice := env.signup(t, "alice", "pw123")

	_, err := env.client.DeleteAccount(alice, &pb.DeleteAccountRequest{})
	require.NoError(t, err)

	_, err = env.client.Login(context.Background(), &pb.LoginRequest{Username: "alice", Password: "pw123"})
	requireCode(t, err, codes.Unauthenticated)

	// the access token still parses but the owner is gone
	_, err = env.client.Translate(alice, &pb.TranslateRequest{Text: "hello", Target: "fr"})
	require.NoError(t, err)
	list, err := env.client.ListHistory(alice, &pb.ListHistoryRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Entries)
}

func TestExportHistory(t *testing.T) {
	env := newTestEnv(t, 0)
	alice := env.signup(t, "alice", "pw123")

	resp, err := env.client.ExportHistory(alice, &pb.ExportHistoryRequest{})
	require.NoError(t, err)
	assert.Equal(t, "alice", env.export.owner)
	assert.Equal(t, "http://s3/x", resp.URL)
	assert.Equal(t, int32(2), resp.Entries)

	env.export.err = errors.Join(common.ErrStorage, errors.New("bucket missing"))
	_, err = env.client.ExportHistory(alice, &pb.ExportHistoryRequest{})
	requireCode(t, err, codes.Unavailable)
}

func TestLoginRateLimit(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()

	for range 2 {
		_, err := env.client.Login(ctx, &pb.LoginRequest{Username: "mallory", Password: "guess"})
		requireCode(t, err, codes.Unauthenticated)
	}
	_, err := env.client.Login(ctx, &pb.LoginRequest{Username: "mallory", Password: "guess"})
	requireCode(t, err, codes.ResourceExhausted)

	// other usernames are unaffected
	_, err = env.client.Login(ctx, &pb.LoginRequest{Username: "alice", Password: "guess"})
	requireCode(t, err, codes.Unauthenticated)
}
