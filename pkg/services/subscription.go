package services

import (
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"leadcapture/pkg/clients/subscribe"
	"leadcapture/pkg/lead"
	"leadcapture/pkg/models"
	"leadcapture/pkg/requestctx"
	"leadcapture/pkg/utils"
)

// ErrMissingKey is returned when a submission does not name its subscription
var ErrMissingKey = errors.New("subscription key is required")

const defaultSubmitTimeout = 10 * time.Second

// Variant selects which fields take part in a subscription
type Variant int

const (
	// VariantBasic collects name and e-mail
	VariantBasic Variant = iota
	// VariantPhone also collects a mandatory phone
	VariantPhone
)

func (v Variant) String() string {
	if v == VariantPhone {
		return "phone"
	}
	return "basic"
}

// Policy returns the validation policy for the variant
func (v Variant) Policy() lead.Policy {
	if v == VariantPhone {
		return lead.PhonePolicy
	}
	return lead.BasicPolicy
}

// SubscribeRequest is one visitor action on a lead form
type SubscribeRequest struct {
	Key     string
	DoneURL string
	Variant Variant
	Form    lead.Form
}

// SubscriptionService defines the interface for handling lead subscriptions
type SubscriptionService interface {
	// Subscribe validates the form, remembers the lead in store, submits it
	// and returns the URL to navigate to. A *lead.ValidationError means
	// nothing was stored or submitted.
	Subscribe(ctx context.Context, store *lead.ContactStore, req SubscribeRequest) (string, error)

	// Remember stores whatever lead fields the form carries and marks key,
	// without validating or submitting anything.
	Remember(ctx context.Context, store *lead.ContactStore, key string, form lead.Form) error
}

type subscriptionServiceImpl struct {
	client  subscribe.Client
	timeout time.Duration
	flights singleflight.Group
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(client subscribe.Client, timeout time.Duration) SubscriptionService {
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}
	return &subscriptionServiceImpl{
		client:  client,
		timeout: timeout,
	}
}

// Subscribe runs Validating -> Rejected or Validating -> Submitting -> Completed.
// Completion does not depend on the remote outcome.
func (s *subscriptionServiceImpl) Subscribe(ctx context.Context, store *lead.ContactStore, req SubscribeRequest) (string, error) {
	if strings.TrimSpace(req.Key) == "" {
		return "", ErrMissingKey
	}

	logger := requestctx.Logger(ctx).WithFields(log.Fields{
		"prefix":  "subscription",
		"key":     req.Key,
		"variant": req.Variant.String(),
	})

	// validate exactly what will be stored and submitted
	form := normalizedForm{form: req.Form}
	if err := lead.Validate(form, req.Variant.Policy()); err != nil {
		logger.WithError(err).Info("lead rejected")
		return "", err
	}

	record := recordFromForm(form)
	withPhone := req.Variant == VariantPhone
	logger = logger.WithField("lead", utils.HashEmail(record.Email))

	store.Save(record, withPhone)
	// the flag is written for every accepted lead; nothing reads it back
	store.MarkFlag(req.Key)

	submission := subscribe.Request{
		Key:       req.Key,
		Email:     record.Email,
		Name:      record.Name,
		WithPhone: withPhone,
	}
	if withPhone {
		submission.Phone = record.Phone
	}

	err := s.submit(ctx, logger, submission)
	if err != nil {
		logger.WithError(err).Warn("subscription request failed, redirecting anyway")
	} else {
		logger.Info("subscription request settled")
	}

	return req.DoneURL, nil
}

func (s *subscriptionServiceImpl) Remember(ctx context.Context, store *lead.ContactStore, key string, form lead.Form) error {
	if strings.TrimSpace(key) == "" {
		return ErrMissingKey
	}

	normalized := normalizedForm{form: form}
	saved := 0
	for _, field := range []string{models.FieldName, models.FieldEmail, models.FieldPhone} {
		value, ok := normalized.Lookup(field)
		if !ok {
			continue
		}
		store.Set(field, value, store.TTLDays())
		saved++
	}
	store.MarkFlag(key)

	requestctx.Logger(ctx).WithFields(log.Fields{
		"prefix": "subscription",
		"key":    key,
		"fields": saved,
	}).Info("lead remembered without submission")
	return nil
}

// submit sends the lead once, collapsing identical submissions that are already in flight
func (s *subscriptionServiceImpl) submit(ctx context.Context, logger *log.Entry, req subscribe.Request) error {
	flightKey := strings.Join([]string{req.Key, req.Email, req.Name, req.Phone}, "\x00")

	_, err, shared := s.flights.Do(flightKey, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return nil, s.client.Subscribe(callCtx, req)
	})
	if shared {
		logger.Debug("joined in-flight submission")
	}
	return err
}

// normalizedForm strips markup and surrounding whitespace from the free-text
// fields while keeping whether the page sent them at all
type normalizedForm struct {
	form lead.Form
}

func (f normalizedForm) Lookup(field string) (string, bool) {
	value, ok := f.form.Lookup(field)
	if ok && (field == models.FieldName || field == models.FieldPhone) {
		value = utils.NormalizeText(value)
	}
	return value, ok
}

func recordFromForm(form lead.Form) models.ContactRecord {
	name, _ := form.Lookup(models.FieldName)
	email, _ := form.Lookup(models.FieldEmail)
	phone, _ := form.Lookup(models.FieldPhone)

	return models.ContactRecord{
		Name:  name,
		Email: email,
		Phone: phone,
	}
}
