package proto

import (
	"context"

	"google.golang.org/grpc"
)

// TranskeeperServiceClient is the client API of the service. Every call is
// sent with the JSON content subtype.
type TranskeeperServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*Empty, error)
	DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*Empty, error)
	PromoteToAdmin(ctx context.Context, in *PromoteToAdminRequest, opts ...grpc.CallOption) (*Empty, error)
	ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error)
	Translate(ctx context.Context, in *TranslateRequest, opts ...grpc.CallOption) (*TranslateResponse, error)
	Transcribe(ctx context.Context, in *TranscribeRequest, opts ...grpc.CallOption) (*TranscribeResponse, error)
	Speak(ctx context.Context, in *SpeakRequest, opts ...grpc.CallOption) (*SpeakResponse, error)
	ListHistory(ctx context.Context, in *ListHistoryRequest, opts ...grpc.CallOption) (*ListHistoryResponse, error)
	ClearHistory(ctx context.Context, in *ClearHistoryRequest, opts ...grpc.CallOption) (*Empty, error)
	ListAllHistory(ctx context.Context, in *ListAllHistoryRequest, opts ...grpc.CallOption) (*ListAllHistoryResponse, error)
	ResetHistory(ctx context.Context, in *ResetHistoryRequest, opts ...grpc.CallOption) (*Empty, error)
	ExportHistory(ctx context.Context, in *ExportHistoryRequest, opts ...grpc.CallOption) (*ExportHistoryResponse, error)
}

type transkeeperServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTranskeeperServiceClient(cc grpc.ClientConnInterface) TranskeeperServiceClient {
	EnsureJSONCodec()
	return &transkeeperServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *transkeeperServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *transkeeperServiceClient) CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error) {
	return invoke[CreateAccountResponse](ctx, c.cc, MethodCreateAccount, in, opts)
}

func (c *transkeeperServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *transkeeperServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *transkeeperServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodLogout, in, opts)
}

func (c *transkeeperServiceClient) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodDeleteAccount, in, opts)
}

func (c *transkeeperServiceClient) PromoteToAdmin(ctx context.Context, in *PromoteToAdminRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodPromoteToAdmin, in, opts)
}

func (c *transkeeperServiceClient) ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error) {
	return invoke[ListAccountsResponse](ctx, c.cc, MethodListAccounts, in, opts)
}

func (c *transkeeperServiceClient) Translate(ctx context.Context, in *TranslateRequest, opts ...grpc.CallOption) (*TranslateResponse, error) {
	return invoke[TranslateResponse](ctx, c.cc, MethodTranslate, in, opts)
}

func (c *transkeeperServiceClient) Transcribe(ctx context.Context, in *TranscribeRequest, opts ...grpc.CallOption) (*TranscribeResponse, error) {
	return invoke[TranscribeResponse](ctx, c.cc, MethodTranscribe, in, opts)
}

func (c *transkeeperServiceClient) Speak(ctx context.Context, in *SpeakRequest, opts ...grpc.CallOption) (*SpeakResponse, error) {
	return invoke[SpeakResponse](ctx, c.cc, MethodSpeak, in, opts)
}

func (c *transkeeperServiceClient) ListHistory(ctx context.Context, in *ListHistoryRequest, opts ...grpc.CallOption) (*ListHistoryResponse, error) {
	return invoke[ListHistoryResponse](ctx, c.cc, MethodListHistory, in, opts)
}

func (c *transkeeperServiceClient) ClearHistory(ctx context.Context, in *ClearHistoryRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodClearHistory, in, opts)
}

func (c *transkeeperServiceClient) ListAllHistory(ctx context.Context, in *ListAllHistoryRequest, opts ...grpc.CallOption) (*ListAllHistoryResponse, error) {
	return invoke[ListAllHistoryResponse](ctx, c.cc, MethodListAllHistory, in, opts)
}

func (c *transkeeperServiceClient) ResetHistory(ctx context.Context, in *ResetHistoryRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodResetHistory, in, opts)
}

func (c *transkeeperServiceClient) ExportHistory(ctx context.Context, in *ExportHistoryRequest, opts ...grpc.CallOption) (*ExportHistoryResponse, error) {
	return invoke[ExportHistoryResponse](ctx, c.cc, MethodExportHistory, in, opts)
}
