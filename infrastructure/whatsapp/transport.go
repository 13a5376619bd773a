package whatsapp

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/AzielCF/az-courier/config"
	domainSend "github.com/AzielCF/az-courier/domains/send"
	pkgError "github.com/AzielCF/az-courier/pkg/error"
	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"google.golang.org/protobuf/proto"
)

// Transport delivers messages over a connected whatsmeow client. It is
// the one concrete implementation of the send.Transport boundary.
type Transport struct {
	client *whatsmeow.Client
}

var _ domainSend.Transport = (*Transport)(nil)

func NewTransport(client *whatsmeow.Client) *Transport {
	return &Transport{client: client}
}

func (t *Transport) SendText(ctx context.Context, phone, message string, opts domainSend.SendOptions) error {
	if t.client == nil {
		return pkgError.TransportError("no client")
	}

	jid, err := parseUserJID(phone)
	if err != nil {
		return err
	}

	if err := t.applySendOptions(ctx, opts); err != nil {
		return err
	}

	msg := &waE2E.Message{
		ExtendedTextMessage: &waE2E.ExtendedTextMessage{
			Text: proto.String(message),
		},
	}

	resp, err := t.client.SendMessage(ctx, jid, msg)
	if err != nil {
		return pkgError.TransportError(fmt.Sprintf("failed to send text: %v", err))
	}

	logrus.WithFields(logrus.Fields{
		"message_id": resp.ID,
		"recipient":  jid.String(),
	}).Debug("[WHATSAPP] Text message delivered")
	return nil
}

func (t *Transport) SendImage(ctx context.Context, phone, imagePath, caption string, opts domainSend.SendOptions) error {
	if t.client == nil {
		return pkgError.TransportError("no client")
	}

	jid, err := parseUserJID(phone)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return pkgError.TransportError(fmt.Sprintf("failed to read image %s: %v", imagePath, err))
	}

	if err := t.applySendOptions(ctx, opts); err != nil {
		return err
	}

	uploaded, err := t.client.Upload(ctx, data, whatsmeow.MediaImage)
	if err != nil {
		return pkgError.TransportError(fmt.Sprintf("failed to upload image: %v", err))
	}

	imageMsg := &waE2E.ImageMessage{
		URL:           proto.String(uploaded.URL),
		DirectPath:    proto.String(uploaded.DirectPath),
		MediaKey:      uploaded.MediaKey,
		Mimetype:      proto.String(http.DetectContentType(data)),
		FileEncSHA256: uploaded.FileEncSHA256,
		FileSHA256:    uploaded.FileSHA256,
		FileLength:    proto.Uint64(uploaded.FileLength),
	}
	if caption != "" {
		imageMsg.Caption = proto.String(caption)
	}

	resp, err := t.client.SendMessage(ctx, jid, &waE2E.Message{ImageMessage: imageMsg})
	if err != nil {
		return pkgError.TransportError(fmt.Sprintf("failed to send image: %v", err))
	}

	logrus.WithFields(logrus.Fields{
		"message_id": resp.ID,
		"recipient":  jid.String(),
	}).Debug("[WHATSAPP] Image message delivered")
	return nil
}

func (t *Transport) SendGroupText(ctx context.Context, groupName, message string, opts domainSend.SendOptions) error {
	if t.client == nil {
		return pkgError.TransportError("no client")
	}

	jid, err := t.resolveGroupJID(ctx, groupName)
	if err != nil {
		return err
	}

	if err := t.applySendOptions(ctx, opts); err != nil {
		return err
	}

	msg := &waE2E.Message{
		ExtendedTextMessage: &waE2E.ExtendedTextMessage{
			Text: proto.String(message),
		},
	}

	resp, err := t.client.SendMessage(ctx, jid, msg)
	if err != nil {
		return pkgError.TransportError(fmt.Sprintf("failed to send group text: %v", err))
	}

	logrus.WithFields(logrus.Fields{
		"message_id": resp.ID,
		"group":      groupName,
	}).Debug("[WHATSAPP] Group message delivered")
	return nil
}

// parseUserJID turns a normalized phone number into a user JID. The
// leading + of the international format is not part of the JID.
func parseUserJID(phone string) (types.JID, error) {
	recipient := strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if !strings.Contains(recipient, "@") {
		recipient = recipient + config.WhatsappTypeUser
	}

	jid, err := types.ParseJID(recipient)
	if err != nil {
		return types.EmptyJID, pkgError.TransportError(fmt.Sprintf("invalid recipient %q: %v", phone, err))
	}
	return jid, nil
}

// resolveGroupJID matches a configured group name against the joined
// groups of the account. The match is case-insensitive and must be
// unambiguous.
func (t *Transport) resolveGroupJID(ctx context.Context, groupName string) (types.JID, error) {
	groups, err := t.client.GetJoinedGroups(ctx)
	if err != nil {
		return types.EmptyJID, pkgError.TransportError(fmt.Sprintf("failed to list joined groups: %v", err))
	}

	var matches []types.JID
	for _, group := range groups {
		if strings.EqualFold(strings.TrimSpace(group.Name), strings.TrimSpace(groupName)) {
			matches = append(matches, group.JID)
		}
	}

	switch len(matches) {
	case 0:
		return types.EmptyJID, pkgError.TransportError(fmt.Sprintf("group %q not found among joined groups", groupName))
	case 1:
		return matches[0], nil
	default:
		return types.EmptyJID, pkgError.TransportError(fmt.Sprintf("group name %q is ambiguous (%d matches)", groupName, len(matches)))
	}
}

// applySendOptions honors the configured pre-send pacing delay. The
// close-after-send flag has no session to close on this transport and is
// only surfaced in logs.
func (t *Transport) applySendOptions(ctx context.Context, opts domainSend.SendOptions) error {
	if opts.CloseAfterSend {
		logrus.Debug("[WHATSAPP] close_tab has no effect on the WhatsApp Web transport")
	}
	if opts.WaitTime <= 0 {
		return nil
	}

	logrus.WithField("wait", opts.WaitTime.String()).Debug("[WHATSAPP] Pausing before send")
	timer := time.NewTimer(opts.WaitTime)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return pkgError.TransportError("send cancelled during pre-send pause")
	case <-timer.C:
		return nil
	}
}
