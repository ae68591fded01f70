package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/duelhall/cardvault/cardvault/config"
	"github.com/duelhall/cardvault/cardvault/database/repositories"
)

// SpacesService mirrors provider-hosted card art into a DigitalOcean
// Spaces bucket so the catalog does not depend on the provider's CDN
// staying up.
type SpacesService struct {
	client     *s3.Client
	httpClient *http.Client
	repo       repositories.CardRepository
	bucket     string
	imageRoot  string
	sem        *semaphore.Weighted
}

type MirrorReport struct {
	Mirrored int64
	Failed   int64
	Duration time.Duration
}

func NewSpacesService(repo repositories.CardRepository, spacesKey, spacesSecret, region, bucket, imageRoot string) (*SpacesService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load spaces config: %w", err)
	}

	return &SpacesService{
		client:     s3.NewFromConfig(cfg),
		httpClient: &http.Client{Timeout: config.MirrorFetchTimeout},
		repo:       repo,
		bucket:     bucket,
		imageRoot:  strings.TrimPrefix(imageRoot, "/"),
		sem:        semaphore.NewWeighted(config.MaxConcurrentMirrors),
	}, nil
}

// MirrorCardImages copies every stored image URL into the bucket under
// <imageRoot>/<cardID>/<variant>.jpg. Individual fetch failures are
// logged and counted, never fatal.
func (s *SpacesService) MirrorCardImages(ctx context.Context, cardIDs []int64) (*MirrorReport, error) {
	start := time.Now()
	images, err := s.repo.ImagesByCardIDs(ctx, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load images for mirroring: %w", err)
	}

	var mirrored, failed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)

	for _, img := range images {
		type variant struct {
			name string
			url  string
		}
		variants := []variant{{"full", img.ImageURL}}
		if img.ImageURLSmall.Valid {
			variants = append(variants, variant{"small", img.ImageURLSmall.String})
		}
		if img.ImageURLCropped.Valid {
			variants = append(variants, variant{"cropped", img.ImageURLCropped.String})
		}

		cardID := img.CardID
		for _, v := range variants {
			v := v
			if err := s.sem.Acquire(ctx, 1); err != nil {
				return nil, err
			}
			g.Go(func() error {
				defer s.sem.Release(1)
				key := fmt.Sprintf("%s/%d/%s.jpg", s.imageRoot, cardID, v.name)
				if err := s.mirrorOne(ctx, v.url, key); err != nil {
					slog.Warn("Image mirror failed",
						slog.Int64("card_id", cardID),
						slog.String("variant", v.name),
						slog.String("error", err.Error()),
					)
					failed.Add(1)
					return nil
				}
				mirrored.Add(1)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &MirrorReport{
		Mirrored: mirrored.Load(),
		Failed:   failed.Load(),
		Duration: time.Since(start),
	}
	slog.Info("Image mirror pass complete",
		slog.Int64("mirrored", report.Mirrored),
		slog.Int64("failed", report.Failed),
		slog.Duration("duration", report.Duration),
	)
	return report, nil
}

func (s *SpacesService) mirrorOne(ctx context.Context, url, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d fetching image", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
		ACL:         "public-read",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
