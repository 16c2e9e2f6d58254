package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/client/client"
	"github.com/dmitrijs2005/transkeeper/internal/client/config"
	pb "github.com/dmitrijs2005/transkeeper/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records calls; methods not overridden panic on the nil
// embedded interface.
type fakeClient struct {
	client.Client

	registered    string
	password      string
	loginSession  *client.Session
	loginErr      error
	logoutCalls   int
	logoutErr     error
	deleted       []string
	translateReq  *pb.TranslateRequest
	translateResp *pb.TranslateResponse
	speakResp     *pb.SpeakResponse
	transcribeIn  *pb.Audio
	transcribeTo  string
	transcribe    *pb.TranscribeResponse
	history       []*pb.HistoryEntry
	historyLimit  int
	cleared       bool
	export        *pb.ExportHistoryResponse
	accounts      []*pb.Account
	promoted      string
	all           map[string][]*pb.HistoryEntry
	reset         string
}

func (f *fakeClient) Register(_ context.Context, username string, password []byte) error {
	f.registered, f.password = username, string(password)
	return nil
}
func (f *fakeClient) Login(_ context.Context, username string, password []byte) (*client.Session, error) {
	f.password = string(password)
	return f.loginSession, f.loginErr
}
func (f *fakeClient) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}
func (f *fakeClient) DeleteAccount(_ context.Context, username string) error {
	f.deleted = append(f.deleted, username)
	return nil
}
func (f *fakeClient) Translate(_ context.Context, req *pb.TranslateRequest) (*pb.TranslateResponse, error) {
	f.translateReq = req
	return f.translateResp, nil
}
func (f *fakeClient) Speak(context.Context, string, string) (*pb.SpeakResponse, error) {
	return f.speakResp, nil
}
func (f *fakeClient) Transcribe(_ context.Context, audio *pb.Audio, target string, _ bool) (*pb.TranscribeResponse, error) {
	f.transcribeIn, f.transcribeTo = audio, target
	return f.transcribe, nil
}
func (f *fakeClient) History(_ context.Context, limit int) ([]*pb.HistoryEntry, error) {
	f.historyLimit = limit
	return f.history, nil
}
func (f *fakeClient) ClearHistory(context.Context) error {
	f.cleared = true
	return nil
}
func (f *fakeClient) ExportHistory(context.Context) (*pb.ExportHistoryResponse, error) {
	return f.export, nil
}
func (f *fakeClient) ListAccounts(context.Context) ([]*pb.Account, error) { return f.accounts, nil }
func (f *fakeClient) PromoteToAdmin(_ context.Context, username string) error {
	f.promoted = username
	return nil
}
func (f *fakeClient) ListAllHistory(context.Context) (map[string][]*pb.HistoryEntry, error) {
	return f.all, nil
}
func (f *fakeClient) ResetHistory(_ context.Context, username string) error {
	f.reset = username
	return nil
}

// stubAnswers feeds getSimpleText from answers in order and getPassword
// with password.
func stubAnswers(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func newTestApp(t *testing.T, f *fakeClient) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &App{
		config: &config.Config{OutputDir: t.TempDir()},
		client: f,
		out:    out,
		now:    func() time.Time { return time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC) },
	}, out
}

func TestRegisterAndLogin(t *testing.T) {
	f := &fakeClient{loginSession: &client.Session{Username: "alice"}}
	a, out := newTestApp(t, f)

	stubAnswers(t, "pw123", "alice", "alice")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice", f.registered)
	assert.Equal(t, "pw123", f.password)

	require.NoError(t, a.Login(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.False(t, a.isAdmin())
	assert.Contains(t, out.String(), "Logged in as alice")
	assert.Equal(t, "(alice )", a.getStatus())
}

func TestLogin_Failure(t *testing.T) {
	f := &fakeClient{loginErr: client.ErrUnauthorized}
	a, _ := newTestApp(t, f)
	stubAnswers(t, "wrong", "alice")

	require.ErrorIs(t, a.Login(context.Background()), client.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
}

func TestLogout_ClearsSessionOnError(t *testing.T) {
	f := &fakeClient{logoutErr: client.ErrUnavailable}
	a, _ := newTestApp(t, f)
	a.session = &client.Session{Username: "alice"}

	require.ErrorIs(t, a.Logout(context.Background()), client.ErrUnavailable)
	assert.False(t, a.isLoggedIn())
}

func TestDelete(t *testing.T) {
	f := &fakeClient{}
	a, out := newTestApp(t, f)
	a.session = &client.Session{Username: "alice", IsAdmin: true}

	stubAnswers(t, "", "n", "y", "yes")

	require.NoError(t, a.Delete(context.Background(), "bob"))
	assert.Empty(t, f.deleted)
	assert.Contains(t, out.String(), "Cancelled")

	require.NoError(t, a.Delete(context.Background(), "bob"))
	assert.Equal(t, []string{"bob"}, f.deleted)
	assert.True(t, a.isLoggedIn())

	require.NoError(t, a.Delete(context.Background(), "alice"))
	assert.Equal(t, []string{"bob", ""}, f.deleted)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, 1, f.logoutCalls)
}

func TestTranslate_SavesAudio(t *testing.T) {
	f := &fakeClient{translateResp: &pb.TranslateResponse{
		Output:    "bonjour",
		Source:    "en",
		Target:    "fr",
		Reverse:   "hello",
		Time:      "2024-03-01 10:20:30",
		Audio:     &pb.Audio{Data: []byte("RIFF"), Format: "wav"},
		AudioFile: "translation_20240301_102030.wav",
		Warnings:  []string{"no voice for French (fr), audio is in English (en)"},
	}}
	a, out := newTestApp(t, f)
	stubAnswers(t, "", "hello", "", "French", "y")

	require.NoError(t, a.Translate(context.Background(), true))

	assert.Equal(t, &pb.TranslateRequest{Text: "hello", Target: "French", Speak: true, Reverse: true}, f.translateReq)
	s := out.String()
	assert.Contains(t, s, "Translated: bonjour")
	assert.Contains(t, s, "Back to English: hello")
	assert.Contains(t, s, "Warning: no voice for French (fr)")

	data, err := os.ReadFile(filepath.Join(a.config.OutputDir, "translation_20240301_102030.wav"))
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data))
}

func TestSpeak_DefaultFileName(t *testing.T) {
	f := &fakeClient{speakResp: &pb.SpeakResponse{Audio: &pb.Audio{Data: []byte("ID3"), Format: "mp3"}}}
	a, _ := newTestApp(t, f)
	stubAnswers(t, "", "hello", "en")

	require.NoError(t, a.Speak(context.Background()))

	_, err := os.Stat(filepath.Join(a.config.OutputDir, "translation_20240301_102030.mp3"))
	require.NoError(t, err)
}

func TestTranscribe(t *testing.T) {
	origRead := readFile
	readFile = func(string) ([]byte, error) { return []byte("RIFF"), nil }
	t.Cleanup(func() { readFile = origRead })

	f := &fakeClient{transcribe: &pb.TranscribeResponse{
		Transcript:  "hello",
		Translation: &pb.TranslateResponse{Output: "bonjour", Source: "en", Target: "fr"},
	}}
	a, out := newTestApp(t, f)
	stubAnswers(t, "", "fr")

	require.NoError(t, a.Transcribe(context.Background(), "clip.WAV"))
	assert.Equal(t, "wav", f.transcribeIn.Format)
	assert.Equal(t, "fr", f.transcribeTo)
	assert.Contains(t, out.String(), "Transcript: hello")
	assert.Contains(t, out.String(), "Translated: bonjour")
}

func TestTranscribe_NothingRecognised(t *testing.T) {
	origRead := readFile
	readFile = func(string) ([]byte, error) { return []byte("RIFF"), nil }
	t.Cleanup(func() { readFile = origRead })

	f := &fakeClient{transcribe: &pb.TranscribeResponse{Warnings: []string{"no speech was recognised"}}}
	a, out := newTestApp(t, f)
	stubAnswers(t, "", "")

	require.NoError(t, a.Transcribe(context.Background(), "clip"))
	assert.Equal(t, "bin", f.transcribeIn.Format)
	assert.Contains(t, out.String(), "Nothing was recognised")
	assert.Contains(t, out.String(), "Warning: no speech was recognised")
}

func TestTranscribe_MissingFile(t *testing.T) {
	a, _ := newTestApp(t, &fakeClient{})
	err := a.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
}

func TestHistoryAndClear(t *testing.T) {
	f := &fakeClient{}
	a, out := newTestApp(t, f)

	require.NoError(t, a.History(context.Background(), 0))
	assert.Contains(t, out.String(), "No history yet")

	f.history = []*pb.HistoryEntry{{Time: "2024-03-01 10:20:30", From: "en", To: "fr", Input: "hello", Output: "bonjour"}}
	require.NoError(t, a.History(context.Background(), 3))
	assert.Equal(t, 3, f.historyLimit)
	assert.Contains(t, out.String(), "[2024-03-01 10:20:30] en -> fr: hello => bonjour")

	stubAnswers(t, "", "y")
	require.NoError(t, a.Clear(context.Background()))
	assert.True(t, f.cleared)
}

func TestExport(t *testing.T) {
	origDownload := download
	var gotURL string
	download = func(_ context.Context, url string) ([]byte, error) {
		gotURL = url
		return []byte(`{"entries":[]}`), nil
	}
	t.Cleanup(func() { download = origDownload })

	f := &fakeClient{export: &pb.ExportHistoryResponse{Key: "exports/alice/x.json", URL: "http://s3/x", Entries: 4}}
	a, out := newTestApp(t, f)

	require.NoError(t, a.Export(context.Background()))
	assert.Equal(t, "http://s3/x", gotURL)
	assert.Contains(t, out.String(), "Exported 4 entries")

	data, err := os.ReadFile(filepath.Join(a.config.OutputDir, "history_20240301_102030.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"entries":[]}`, string(data))

	download = func(context.Context, string) ([]byte, error) { return nil, errors.New("403") }
	require.ErrorContains(t, a.Export(context.Background()), "403")
}

func TestAdminCommands(t *testing.T) {
	f := &fakeClient{
		accounts: []*pb.Account{{Username: "admin", IsAdmin: true}, {Username: "alice"}},
		all: map[string][]*pb.HistoryEntry{
			"bob":   {{Input: "b"}},
			"alice": {{Input: "a"}},
		},
	}
	a, out := newTestApp(t, f)

	require.NoError(t, a.Users(context.Background()))
	require.NoError(t, a.Promote(context.Background(), "alice"))
	require.NoError(t, a.All(context.Background()))
	require.NoError(t, a.Reset(context.Background(), "bob"))

	assert.Equal(t, "alice", f.promoted)
	assert.Equal(t, "bob", f.reset)

	s := out.String()
	assert.Contains(t, s, "admin")
	assert.Less(t, strings.Index(s, "== alice"), strings.Index(s, "== bob"))
}

func TestSetMode(t *testing.T) {
	a := &App{}
	a.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, a.Mode)
	assert.Equal(t, "(online)", a.getStatus())

	a.session = &client.Session{Username: "root", IsAdmin: true}
	assert.Equal(t, "(root admin online)", a.getStatus())
}
