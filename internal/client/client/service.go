package client

import (
	"context"

	pb "github.com/dmitrijs2005/transkeeper/internal/proto"
)

// Session describes the account a client is logged in as.
type Session struct {
	Username string
	IsAdmin  bool
}

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (*Session, error)
	Logout(ctx context.Context) error
	Translate(ctx context.Context, req *pb.TranslateRequest) (*pb.TranslateResponse, error)
	Transcribe(ctx context.Context, audio *pb.Audio, target string, speak bool) (*pb.TranscribeResponse, error)
	Speak(ctx context.Context, text, lang string) (*pb.SpeakResponse, error)
	History(ctx context.Context, limit int) ([]*pb.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
	ExportHistory(ctx context.Context) (*pb.ExportHistoryResponse, error)
	DeleteAccount(ctx context.Context, username string) error
	ListAccounts(ctx context.Context) ([]*pb.Account, error)
	PromoteToAdmin(ctx context.Context, username string) error
	ListAllHistory(ctx context.Context) (map[string][]*pb.HistoryEntry, error)
	ResetHistory(ctx context.Context, username string) error
}
