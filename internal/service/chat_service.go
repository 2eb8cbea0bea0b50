package service

import (
	"context"

	"ai-quickdoc-be/internal/dto"
	"ai-quickdoc-be/pkg/rag"
)

type IChatService interface {
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	pipeline *rag.Pipeline
}

func NewChatService(pipeline *rag.Pipeline) IChatService {
	return &chatService{
		pipeline: pipeline,
	}
}

func (s *chatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.ChatResponse, error) {
	answer, err := s.pipeline.Ask(ctx, req.Message, req.SessionId)
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Message:   answer.Message,
		SessionId: answer.SessionId,
	}, nil
}
