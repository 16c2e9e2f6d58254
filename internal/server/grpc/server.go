// Package grpc exposes the services over the transkeeper gRPC API.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/transkeeper/internal/logging"
	pb "github.com/dmitrijs2005/transkeeper/internal/proto"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
	"github.com/dmitrijs2005/transkeeper/internal/server/services"
	"github.com/dmitrijs2005/transkeeper/internal/server/speech"
	"google.golang.org/grpc"
)

type AccountService interface {
	Normalize(username string) (string, error)
	CreateAccount(ctx context.Context, username, password string) (*models.Account, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.Session, error)
	Logout(ctx context.Context, refreshToken string) error
	DeleteAccount(ctx context.Context, actor, username string) error
	PromoteToAdmin(ctx context.Context, actor, username string) error
	ListAccounts(ctx context.Context, actor string) ([]*models.Account, error)
}

type HistoryService interface {
	List(ctx context.Context, owner string, limit int) ([]*models.HistoryEntry, error)
	Clear(ctx context.Context, owner string) error
	ListAll(ctx context.Context, actor string) (map[string][]*models.HistoryEntry, error)
	Reset(ctx context.Context, actor, owner string) error
}

type TranslationService interface {
	Translate(ctx context.Context, owner string, req services.TranslateRequest) (*services.TranslateResult, error)
	Transcribe(ctx context.Context, owner string, audio *speech.Audio, target string, speak bool) (*services.TranscribeResult, error)
	Speak(ctx context.Context, text, lang string) (*speech.Audio, string, error)
}

type ExportService interface {
	Export(ctx context.Context, owner string) (*services.Export, error)
}

type GRPCServer struct {
	pb.UnimplementedTranskeeperServiceServer
	address     string
	accounts    AccountService
	history     HistoryService
	translation TranslationService
	export      ExportService
	logger      logging.Logger
	jwtSecret   []byte
	limiter     *userLimiter
}

// Options carries the non-service settings of the server.
type Options struct {
	Address           string
	SecretKey         string
	AuthRatePerMinute int
}

func NewGRPCServer(opts Options, l logging.Logger, as AccountService, hs HistoryService, ts TranslationService, es ExportService) *GRPCServer {
	return &GRPCServer{
		address:     opts.Address,
		logger:      l.With("module", "grpc_server"),
		accounts:    as,
		history:     hs,
		translation: ts,
		export:      es,
		jwtSecret:   []byte(opts.SecretKey),
		limiter:     newUserLimiter(opts.AuthRatePerMinute),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.requestInterceptor,
		s.accessTokenInterceptor,
		s.rateLimitInterceptor,
	))
	pb.RegisterTranskeeperServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
