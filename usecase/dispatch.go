package usecase

import (
	"context"
	"time"

	"github.com/AzielCF/az-courier/config"
	domainSend "github.com/AzielCF/az-courier/domains/send"
	"github.com/AzielCF/az-courier/validations"
	"github.com/sirupsen/logrus"
)

type serviceDispatch struct {
	transport domainSend.Transport
	settings  config.Settings
}

func NewDispatchService(transport domainSend.Transport, settings config.Settings) domainSend.IDispatchUsecase {
	return &serviceDispatch{
		transport: transport,
		settings:  settings,
	}
}

// Process validates one (target, message) pair and routes it to the
// matching transport operation. Exactly zero or one transport call is
// made per invocation; failures are returned as outcomes, never raised.
func (service *serviceDispatch) Process(ctx context.Context, target domainSend.Target, message config.Message) domainSend.Outcome {
	opts := domainSend.SendOptions{
		WaitTime:       time.Duration(service.settings.WaitTime) * time.Second,
		CloseAfterSend: service.settings.CloseTab,
	}

	switch target.Kind {
	case domainSend.TargetGroup:
		return service.processGroup(ctx, target, message, opts)
	case domainSend.TargetIndividual:
		return service.processIndividual(ctx, target, message, opts)
	default:
		logrus.WithFields(logrus.Fields{
			"target": target.Name,
			"kind":   target.Kind,
		}).Error("[DISPATCH] Unhandled target kind")
		return domainSend.Failed("unhandled combination")
	}
}

func (service *serviceDispatch) processGroup(ctx context.Context, target domainSend.Target, message config.Message, opts domainSend.SendOptions) domainSend.Outcome {
	switch message.Type {
	case config.MessageTypeImage:
		// Known capability gap, surfaced instead of silently dropped.
		logrus.WithField("group", target.Name).Warn("[DISPATCH] Image sending to groups is not supported; consider sending to individual members")
		return domainSend.Skipped("group image unsupported")
	case config.MessageTypeText:
		logrus.WithField("group", target.Name).Info("[DISPATCH] Sending text message to group")
		if err := service.transport.SendGroupText(ctx, target.Name, message.Content, opts); err != nil {
			logrus.WithError(err).WithField("group", target.Name).Error("[DISPATCH] Failed to send group message")
			return domainSend.Failed(err.Error())
		}
		logrus.WithField("group", target.Name).Info("[DISPATCH] Group message sent successfully")
		return domainSend.Sent()
	default:
		logrus.WithFields(logrus.Fields{
			"group": target.Name,
			"type":  message.Type,
		}).Error("[DISPATCH] Unhandled message type")
		return domainSend.Failed("unhandled combination")
	}
}

func (service *serviceDispatch) processIndividual(ctx context.Context, target domainSend.Target, message config.Message, opts domainSend.SendOptions) domainSend.Outcome {
	phone, hasCountryCode := validations.NormalizePhone(target.Phone)
	if !hasCountryCode {
		logrus.WithFields(logrus.Fields{
			"contact": target.Name,
			"phone":   phone,
		}).Warn("[DISPATCH] Phone number doesn't start with country code (+)")
	}

	switch message.Type {
	case config.MessageTypeText:
		logrus.WithFields(logrus.Fields{
			"contact": target.Name,
			"phone":   phone,
		}).Info("[DISPATCH] Sending text message")
		if err := service.transport.SendText(ctx, phone, message.Content, opts); err != nil {
			logrus.WithError(err).WithField("contact", target.Name).Error("[DISPATCH] Failed to send text message")
			return domainSend.Failed(err.Error())
		}
		logrus.WithField("contact", target.Name).Info("[DISPATCH] Text message sent successfully")
		return domainSend.Sent()

	case config.MessageTypeImage:
		if !validations.IsSendableImage(message.ImagePath, service.settings.ImageFormats) {
			logrus.WithFields(logrus.Fields{
				"contact": target.Name,
				"image":   message.ImagePath,
			}).Error("[DISPATCH] Image file missing or format not allowed")
			return domainSend.Failed("image not eligible")
		}

		logrus.WithFields(logrus.Fields{
			"contact": target.Name,
			"phone":   phone,
			"image":   message.ImagePath,
		}).Info("[DISPATCH] Sending image")
		if err := service.transport.SendImage(ctx, phone, message.ImagePath, message.Caption, opts); err != nil {
			logrus.WithError(err).WithField("contact", target.Name).Error("[DISPATCH] Failed to send image")
			return domainSend.Failed(err.Error())
		}
		logrus.WithField("contact", target.Name).Info("[DISPATCH] Image sent successfully")
		return domainSend.Sent()

	default:
		logrus.WithFields(logrus.Fields{
			"contact": target.Name,
			"type":    message.Type,
		}).Error("[DISPATCH] Unhandled message type")
		return domainSend.Failed("unhandled combination")
	}
}
