package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shubh-37/social-content-engine/internal/models"
	"github.com/sirupsen/logrus"
)

// Publisher periodically marks scheduled posts as published once their slot has passed
type Publisher struct {
	scheduler *SchedulerAgent
	postRepo  PostStore
	location  *time.Location
	log       logrus.FieldLogger
	cron      *cron.Cron
	recorder  publishRecorder
}

type publishRecorder interface {
	PostsPublished(count int)
}

func NewPublisher(scheduler *SchedulerAgent, postRepo PostStore, location *time.Location, log logrus.FieldLogger) *Publisher {
	if location == nil {
		location = time.UTC
	}
	return &Publisher{
		scheduler: scheduler,
		postRepo:  postRepo,
		location:  location,
		log:       log,
	}
}

// WithRecorder reports every publish run's count to r
func (p *Publisher) WithRecorder(r publishRecorder) *Publisher {
	p.recorder = r
	return p
}

// Start registers the publish job on spec (e.g. "@every 1m") and starts the cron runner
func (p *Publisher) Start(spec string) error {
	p.cron = cron.New(cron.WithLocation(p.location))
	_, err := p.cron.AddFunc(spec, func() {
		count, err := p.PublishDue(context.Background(), time.Now().In(p.location))
		if err != nil {
			p.log.WithError(err).Error("❌ Failed to publish due posts")
			return
		}
		if count > 0 {
			p.log.WithField("count", count).Info("🚀 Published scheduled posts")
		}
	})
	if err != nil {
		return fmt.Errorf("could not set up publish job: %w", err)
	}

	p.cron.Start()
	p.log.WithField("schedule", spec).Info("📅 Publisher started")
	return nil
}

// Stop waits for a running job to finish
func (p *Publisher) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	p.log.Info("Publisher stopped")
}

// PublishDue moves every due scheduled post to published and returns how many moved
func (p *Publisher) PublishDue(ctx context.Context, now time.Time) (int, error) {
	due, err := p.scheduler.DuePosts(ctx, now)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, post := range due {
		post.Status = models.StatusPublished
		if err := p.postRepo.Update(ctx, post); err != nil {
			p.log.WithError(err).WithField("post_id", post.ID).Warn("⚠️ Failed to publish post")
			continue
		}
		published++
	}

	if p.recorder != nil && published > 0 {
		p.recorder.PostsPublished(published)
	}

	return published, nil
}
