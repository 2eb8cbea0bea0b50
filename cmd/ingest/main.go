package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-quickdoc-be/internal/config"
	"ai-quickdoc-be/internal/entity"
	"ai-quickdoc-be/internal/repository/unitofwork"
	"ai-quickdoc-be/pkg/database"
	"ai-quickdoc-be/pkg/embedding"
	"ai-quickdoc-be/pkg/embedding/jina"
	"ai-quickdoc-be/pkg/extract"
	"ai-quickdoc-be/pkg/ingest"
	"ai-quickdoc-be/pkg/vectorstore/pgvector"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Ingests a local .txt or .pdf file synchronously, bypassing the HTTP API.
// Useful for seeding an index from the command line.
//
// Usage: go run cmd/ingest/main.go <path-to-file>
func main() {
	if len(os.Args) < 2 {
		color.Red("Usage: ingest <path-to-file>")
		os.Exit(1)
	}
	path := os.Args[1]

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		color.Red("Failed to read file: %v", err)
		os.Exit(1)
	}

	text := string(data)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = extract.TextFromPDF(data)
		if err != nil {
			color.Red("Failed to extract PDF text: %v", err)
			os.Exit(1)
		}
	}

	color.Cyan("Ingesting %s (%d chars) into namespace %q", filepath.Base(path), len(text), cfg.Index.Namespace)

	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "jina":
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	index := pgvector.NewIndex(uowFactory, cfg.Index.Dimension)
	pipeline := ingest.NewPipeline(embeddingProvider, index, nil, ingest.Config{
		ChunkSize: ingest.DefaultChunkSize,
		Overlap:   ingest.DefaultOverlap,
	})

	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	doc := &entity.Document{
		Id:        uuid.New(),
		FileName:  filepath.Base(path),
		Namespace: cfg.Index.Namespace,
		Status:    entity.DocumentStatusPending,
		CharCount: len(text),
		CreatedAt: time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		color.Red("Failed to create document record: %v", err)
		os.Exit(1)
	}

	start := time.Now()
	written, err := pipeline.Ingest(ctx, doc.Id, cfg.Index.Namespace, text)

	now := time.Now()
	doc.UpdatedAt = &now
	doc.PassageCount = written
	if err != nil {
		doc.Status = entity.DocumentStatusFailed
		_ = uow.DocumentRepository().Update(ctx, doc)
		color.Red("Ingestion failed: %v", err)
		os.Exit(1)
	}
	doc.Status = entity.DocumentStatusCompleted
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		color.Red("Failed to update document record: %v", err)
		os.Exit(1)
	}

	color.Green("Done: %d passages indexed in %s (document %s)", written, time.Since(start).Round(time.Millisecond), doc.Id)
}
