package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "transkeeper.v1.TranskeeperService"

// Full method names.
const (
	MethodPing           = "/" + ServiceName + "/Ping"
	MethodCreateAccount  = "/" + ServiceName + "/CreateAccount"
	MethodLogin          = "/" + ServiceName + "/Login"
	MethodRefreshToken   = "/" + ServiceName + "/RefreshToken"
	MethodLogout         = "/" + ServiceName + "/Logout"
	MethodDeleteAccount  = "/" + ServiceName + "/DeleteAccount"
	MethodPromoteToAdmin = "/" + ServiceName + "/PromoteToAdmin"
	MethodListAccounts   = "/" + ServiceName + "/ListAccounts"
	MethodTranslate      = "/" + ServiceName + "/Translate"
	MethodTranscribe     = "/" + ServiceName + "/Transcribe"
	MethodSpeak          = "/" + ServiceName + "/Speak"
	MethodListHistory    = "/" + ServiceName + "/ListHistory"
	MethodClearHistory   = "/" + ServiceName + "/ClearHistory"
	MethodListAllHistory = "/" + ServiceName + "/ListAllHistory"
	MethodResetHistory   = "/" + ServiceName + "/ResetHistory"
	MethodExportHistory  = "/" + ServiceName + "/ExportHistory"
)

// TranskeeperServiceServer is the server API of the service.
type TranskeeperServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error)
	Login(context.Context, *LoginRequest) (*SessionResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*SessionResponse, error)
	Logout(context.Context, *LogoutRequest) (*Empty, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*Empty, error)
	PromoteToAdmin(context.Context, *PromoteToAdminRequest) (*Empty, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error)
	Translate(context.Context, *TranslateRequest) (*TranslateResponse, error)
	Transcribe(context.Context, *TranscribeRequest) (*TranscribeResponse, error)
	Speak(context.Context, *SpeakRequest) (*SpeakResponse, error)
	ListHistory(context.Context, *ListHistoryRequest) (*ListHistoryResponse, error)
	ClearHistory(context.Context, *ClearHistoryRequest) (*Empty, error)
	ListAllHistory(context.Context, *ListAllHistoryRequest) (*ListAllHistoryResponse, error)
	ResetHistory(context.Context, *ResetHistoryRequest) (*Empty, error)
	ExportHistory(context.Context, *ExportHistoryRequest) (*ExportHistoryResponse, error)
}

// UnimplementedTranskeeperServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedTranskeeperServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedTranskeeperServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedTranskeeperServiceServer) CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error) {
	return nil, unimplemented("CreateAccount")
}
func (UnimplementedTranskeeperServiceServer) Login(context.Context, *LoginRequest) (*SessionResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedTranskeeperServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*SessionResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedTranskeeperServiceServer) Logout(context.Context, *LogoutRequest) (*Empty, error) {
	return nil, unimplemented("Logout")
}
func (UnimplementedTranskeeperServiceServer) DeleteAccount(context.Context, *DeleteAccountRequest) (*Empty, error) {
	return nil, unimplemented("DeleteAccount")
}
func (UnimplementedTranskeeperServiceServer) PromoteToAdmin(context.Context, *PromoteToAdminRequest) (*Empty, error) {
	return nil, unimplemented("PromoteToAdmin")
}
func (UnimplementedTranskeeperServiceServer) ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error) {
	return nil, unimplemented("ListAccounts")
}
func (UnimplementedTranskeeperServiceServer) Translate(context.Context, *TranslateRequest) (*TranslateResponse, error) {
	return nil, unimplemented("Translate")
}
func (UnimplementedTranskeeperServiceServer) Transcribe(context.Context, *TranscribeRequest) (*TranscribeResponse, error) {
	return nil, unimplemented("Transcribe")
}
func (UnimplementedTranskeeperServiceServer) Speak(context.Context, *SpeakRequest) (*SpeakResponse, error) {
	return nil, unimplemented("Speak")
}
func (UnimplementedTranskeeperServiceServer) ListHistory(context.Context, *ListHistoryRequest) (*ListHistoryResponse, error) {
	return nil, unimplemented("ListHistory")
}
func (UnimplementedTranskeeperServiceServer) ClearHistory(context.Context, *ClearHistoryRequest) (*Empty, error) {
	return nil, unimplemented("ClearHistory")
}
func (UnimplementedTranskeeperServiceServer) ListAllHistory(context.Context, *ListAllHistoryRequest) (*ListAllHistoryResponse, error) {
	return nil, unimplemented("ListAllHistory")
}
func (UnimplementedTranskeeperServiceServer) ResetHistory(context.Context, *ResetHistoryRequest) (*Empty, error) {
	return nil, unimplemented("ResetHistory")
}
func (UnimplementedTranskeeperServiceServer) ExportHistory(context.Context, *ExportHistoryRequest) (*ExportHistoryResponse, error) {
	return nil, unimplemented("ExportHistory")
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](method string, call func(TranskeeperServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TranskeeperServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TranskeeperServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var TranskeeperServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TranskeeperServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, TranskeeperServiceServer.Ping)},
		{MethodName: "CreateAccount", Handler: unaryHandler(MethodCreateAccount, TranskeeperServiceServer.CreateAccount)},
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, TranskeeperServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unaryHandler(MethodRefreshToken, TranskeeperServiceServer.RefreshToken)},
		{MethodName: "Logout", Handler: unaryHandler(MethodLogout, TranskeeperServiceServer.Logout)},
		{MethodName: "DeleteAccount", Handler: unaryHandler(MethodDeleteAccount, TranskeeperServiceServer.DeleteAccount)},
		{MethodName: "PromoteToAdmin", Handler: unaryHandler(MethodPromoteToAdmin, TranskeeperServiceServer.PromoteToAdmin)},
		{MethodName: "ListAccounts", Handler: unaryHandler(MethodListAccounts, TranskeeperServiceServer.ListAccounts)},
		{MethodName: "Translate", Handler: unaryHandler(MethodTranslate, TranskeeperServiceServer.Translate)},
		{MethodName: "Transcribe", Handler: unaryHandler(MethodTranscribe, TranskeeperServiceServer.Transcribe)},
		{MethodName: "Speak", Handler: unaryHandler(MethodSpeak, TranskeeperServiceServer.Speak)},
		{MethodName: "ListHistory", Handler: unaryHandler(MethodListHistory, TranskeeperServiceServer.ListHistory)},
		{MethodName: "ClearHistory", Handler: unaryHandler(MethodClearHistory, TranskeeperServiceServer.ClearHistory)},
		{MethodName: "ListAllHistory", Handler: unaryHandler(MethodListAllHistory, TranskeeperServiceServer.ListAllHistory)},
		{MethodName: "ResetHistory", Handler: unaryHandler(MethodResetHistory, TranskeeperServiceServer.ResetHistory)},
		{MethodName: "ExportHistory", Handler: unaryHandler(MethodExportHistory, TranskeeperServiceServer.ExportHistory)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "transkeeper.v1",
}

// RegisterTranskeeperServiceServer registers srv and the JSON codec.
func RegisterTranskeeperServiceServer(s grpc.ServiceRegistrar, srv TranskeeperServiceServer) {
	EnsureJSONCodec()
	s.RegisterService(&TranskeeperServiceDesc, srv)
}
