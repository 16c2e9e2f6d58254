package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	pb "github.com/dmitrijs2005/transkeeper/internal/proto"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
	"github.com/dmitrijs2005/transkeeper/internal/server/services"
	"github.com/dmitrijs2005/transkeeper/internal/server/speech"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) caller(ctx context.Context) (string, error) {
	name, ok := UsernameFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return name, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) CreateAccount(ctx context.Context, req *pb.CreateAccountRequest) (*pb.CreateAccountResponse, error) {
	a, err := s.accounts.CreateAccount(ctx, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.CreateAccountResponse{Username: a.Username}, nil
}

func toSession(sess *services.Session) *pb.SessionResponse {
	return &pb.SessionResponse{
		Username:     sess.Username,
		IsAdmin:      sess.IsAdmin,
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
	}
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.SessionResponse, error) {
	sess, err := s.accounts.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return toSession(sess), nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.SessionResponse, error) {
	sess, err := s.accounts.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return toSession(sess), nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *pb.LogoutRequest) (*pb.Empty, error) {
	if err := s.accounts.Logout(ctx, req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *pb.DeleteAccountRequest) (*pb.Empty, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	target := req.Username
	if target == "" {
		target = actor
	}
	if err := s.accounts.DeleteAccount(ctx, actor, target); err != nil {
		return nil, toStatus(err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) PromoteToAdmin(ctx context.Context, req *pb.PromoteToAdminRequest) (*pb.Empty, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.PromoteToAdmin(ctx, actor, req.Username); err != nil {
		return nil, toStatus(err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) ListAccounts(ctx context.Context, req *pb.ListAccountsRequest) (*pb.ListAccountsResponse, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.accounts.ListAccounts(ctx, actor)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.ListAccountsResponse{Accounts: make([]*pb.Account, 0, len(list))}
	for _, a := range list {
		resp.Accounts = append(resp.Accounts, &pb.Account{
			Username:  a.Username,
			IsAdmin:   a.IsAdmin,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

func toAudio(a *speech.Audio) *pb.Audio {
	if a == nil {
		return nil
	}
	return &pb.Audio{Data: a.Data, Format: a.Format, Lang: a.Lang}
}

func toTranslateResponse(res *services.TranslateResult) *pb.TranslateResponse {
	out := &pb.TranslateResponse{
		Output:    res.Output,
		Source:    res.Source,
		Target:    res.Target,
		Reverse:   res.Reverse,
		Audio:     toAudio(res.Audio),
		AudioFile: res.AudioFile,
		Warnings:  res.Warnings,
	}
	if res.Entry != nil {
		out.Time = res.Entry.Timestamp()
	}
	return out
}

func (s *GRPCServer) Translate(ctx context.Context, req *pb.TranslateRequest) (*pb.TranslateResponse, error) {
	owner, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.translation.Translate(ctx, owner, services.TranslateRequest{
		Text:    req.Text,
		Source:  req.Source,
		Target:  req.Target,
		Speak:   req.Speak,
		Reverse: req.Reverse,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return toTranslateResponse(res), nil
}

func (s *GRPCServer) Transcribe(ctx context.Context, req *pb.TranscribeRequest) (*pb.TranscribeResponse, error) {
	owner, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.Audio == nil {
		return nil, status.Error(codes.InvalidArgument, "audio is required")
	}

	audio := &speech.Audio{Data: req.Audio.Data, Format: req.Audio.Format, Lang: req.Audio.Lang}
	res, err := s.translation.Transcribe(ctx, owner, audio, req.Target, req.Speak)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.TranscribeResponse{Transcript: res.Transcript, Warnings: res.Warnings}
	if res.Translation != nil {
		resp.Translation = toTranslateResponse(res.Translation)
	}
	return resp, nil
}

func (s *GRPCServer) Speak(ctx context.Context, req *pb.SpeakRequest) (*pb.SpeakResponse, error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}

	a, name, err := s.translation.Speak(ctx, req.Text, req.Lang)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.SpeakResponse{Audio: toAudio(a), AudioFile: name}, nil
}

func toHistory(list []*models.HistoryEntry) []*pb.HistoryEntry {
	out := make([]*pb.HistoryEntry, 0, len(list))
	for _, e := range list {
		out = append(out, &pb.HistoryEntry{
			Time:   e.Time.Format(common.TimeLayout),
			From:   e.From,
			To:     e.To,
			Input:  e.Input,
			Output: e.Output,
		})
	}
	return out
}

func (s *GRPCServer) ListHistory(ctx context.Context, req *pb.ListHistoryRequest) (*pb.ListHistoryResponse, error) {
	owner, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.history.List(ctx, owner, int(req.Limit))
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ListHistoryResponse{Entries: toHistory(list)}, nil
}

func (s *GRPCServer) ClearHistory(ctx context.Context, req *pb.ClearHistoryRequest) (*pb.Empty, error) {
	owner, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.history.Clear(ctx, owner); err != nil {
		return nil, toStatus(err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) ListAllHistory(ctx context.Context, req *pb.ListAllHistoryRequest) (*pb.ListAllHistoryResponse, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.history.ListAll(ctx, actor)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.ListAllHistoryResponse{Histories: make(map[string][]*pb.HistoryEntry, len(all))}
	for owner, list := range all {
		resp.Histories[owner] = toHistory(list)
	}
	return resp, nil
}

func (s *GRPCServer) ResetHistory(ctx context.Context, req *pb.ResetHistoryRequest) (*pb.Empty, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.history.Reset(ctx, actor, req.Username); err != nil {
		return nil, toStatus(err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) ExportHistory(ctx context.Context, req *pb.ExportHistoryRequest) (*pb.ExportHistoryResponse, error) {
	owner, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	exp, err := s.export.Export(ctx, owner)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ExportHistoryResponse{Key: exp.Key, URL: exp.URL, Entries: int32(exp.Entries)}, nil
}
