package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	pb "github.com/dmitrijs2005/transkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const defaultTimeout = 30 * time.Second

var _ Client = (*GRPCClient)(nil)

type GRPCClient struct {
	endpointURL  string
	timeout      time.Duration
	conn         *grpc.ClientConn
	client       pb.TranskeeperServiceClient
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = withAccessToken(ctx, s.accessToken)

	err := invoker(ctx, method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if s.refreshToken == "" {
		return err
	}

	refreshed, err := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: s.refreshToken})
	if err != nil {
		return err
	}

	s.accessToken = refreshed.AccessToken
	s.refreshToken = refreshed.RefreshToken

	return invoker(withAccessToken(ctx, s.accessToken), method, req, reply, cc, opts...)
}

// NewTranskeeperClient prepares a connection to endpointURL. timeout bounds
// every call; zero selects a default.
func NewTranskeeperClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewTranskeeperServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, username string, password []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.CreateAccount(ctx, &pb.CreateAccountRequest{Username: username, Password: string(password)})
	return s.mapError(err)
}

func (s *GRPCClient) Login(ctx context.Context, username string, password []byte) (*Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &pb.LoginRequest{Username: username, Password: string(password)})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken

	return &Session{Username: resp.Username, IsAdmin: resp.IsAdmin}, nil
}

// Logout revokes the refresh token and forgets both tokens, even when the
// server could not be reached.
func (s *GRPCClient) Logout(ctx context.Context) error {
	if s.refreshToken == "" {
		return ErrNotLoggedIn
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.Logout(ctx, &pb.LogoutRequest{RefreshToken: s.refreshToken})
	s.accessToken, s.refreshToken = "", ""
	return s.mapError(err)
}

func (s *GRPCClient) Translate(ctx context.Context, req *pb.TranslateRequest) (*pb.TranslateResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Translate(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Transcribe(ctx context.Context, audio *pb.Audio, target string, speak bool) (*pb.TranscribeResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Transcribe(ctx, &pb.TranscribeRequest{Audio: audio, Target: target, Speak: speak})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Speak(ctx context.Context, text, lang string) (*pb.SpeakResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Speak(ctx, &pb.SpeakRequest{Text: text, Lang: lang})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) History(ctx context.Context, limit int) ([]*pb.HistoryEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListHistory(ctx, &pb.ListHistoryRequest{Limit: int32(limit)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entries, nil
}

func (s *GRPCClient) ClearHistory(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.ClearHistory(ctx, &pb.ClearHistoryRequest{})
	return s.mapError(err)
}

func (s *GRPCClient) ExportHistory(ctx context.Context) (*pb.ExportHistoryResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ExportHistory(ctx, &pb.ExportHistoryRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// DeleteAccount deletes username; an empty name deletes the logged in account.
func (s *GRPCClient) DeleteAccount(ctx context.Context, username string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.DeleteAccount(ctx, &pb.DeleteAccountRequest{Username: username})
	return s.mapError(err)
}

func (s *GRPCClient) ListAccounts(ctx context.Context) ([]*pb.Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListAccounts(ctx, &pb.ListAccountsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Accounts, nil
}

func (s *GRPCClient) PromoteToAdmin(ctx context.Context, username string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.PromoteToAdmin(ctx, &pb.PromoteToAdminRequest{Username: username})
	return s.mapError(err)
}

func (s *GRPCClient) ListAllHistory(ctx context.Context) (map[string][]*pb.HistoryEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListAllHistory(ctx, &pb.ListAllHistoryRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Histories, nil
}

func (s *GRPCClient) ResetHistory(ctx context.Context, username string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.ResetHistory(ctx, &pb.ResetHistoryRequest{Username: username})
	return s.mapError(err)
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrForbidden, st.Message())
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: request timed out", ErrUnavailable)
	default:
		return errors.New(st.Message())
	}
}
