package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/akshay-shet/ecoskin-api/config"
	"github.com/akshay-shet/ecoskin-api/pkg/helpers"
	"github.com/akshay-shet/ecoskin-api/pkg/mailer"
	"github.com/akshay-shet/ecoskin-api/pkg/mailer/templates"
)

// The email worker drains the email queue and sends via Mailgun. It runs as
// a separate process so a slow mail provider never blocks an API request.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := helpers.NewLogger(cfg.Env)

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		log.WithError(err).Fatal("rabbitmq connection failed")
	}
	defer consumer.Close()

	deliveries, err := consumer.Consume()
	if err != nil {
		log.WithError(err).Fatal("queue consume failed")
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	for {
		select {
		case <-ctx.Done():
			log.Info("email worker shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				log.Warn("delivery channel closed")
				return
			}
			handle(ctx, log, mg, cfg.CompanyName, d)
		}
	}
}

func handle(ctx context.Context, log *logrus.Logger, mg *mailer.Mailgun, appName string, d amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		log.WithError(err).Warn("dropping malformed email job")
		_ = d.Nack(false, false)
		return
	}

	subject, text, html, err := render(appName, job)
	if err != nil {
		log.WithError(err).WithField("type", job.Type).Warn("dropping unrenderable email job")
		_ = d.Nack(false, false)
		return
	}

	if err := mg.Send(ctx, job.To, subject, text, html); err != nil {
		log.WithError(err).WithField("to", job.To).Error("send failed, requeueing")
		_ = d.Nack(false, true)
		return
	}
	log.WithFields(logrus.Fields{"to": job.To, "type": job.Type}).Info("email sent")
	_ = d.Ack(false)
}

func render(appName string, job mailer.EmailJob) (subject, text, html string, err error) {
	data := templates.EmailData{Name: job.Name, AppName: appName}
	switch job.Type {
	case mailer.JobWelcome:
		if job.LoginLocation == "" && job.LoginIP != "" {
			if g, err := (templates.IPAPIResolver{}).Lookup(context.Background(), job.LoginIP); err == nil {
				job.LoginLocation = templates.FormatGeo(g)
			}
		}
		return templates.Render("welcome", data,
			templates.WithLogin(job.LoginIP, job.LoginLocation, job.LoginTime))
	case mailer.JobPlanSummary:
		return templates.Render("plan_summary", data,
			templates.WithPlan(job.WeeklyFocus, job.DailyTips, job.StepCount))
	default:
		return templates.Render(job.Type, data)
	}
}
