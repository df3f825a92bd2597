package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math/rand"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/storage"
	"github.com/tecsup/autobody-backend/internal/types"
)

// AvatarService renders an initials avatar for a new client and uploads it to
// the blob store. The profile screen shows it next to the client's vehicles.
type AvatarService interface {
	CreateAndUploadUserAvatar(ctx context.Context, user *types.User) error
	GenerateUserAvatar(user *types.User) (bytes.Buffer, error)
}

type avatarService struct {
	log       *logger.Logger
	blobStore storage.BlobStore
	bgColors  []color.NRGBA
	fontFace  font.Face
}

var avatarPalette = []color.NRGBA{
	{R: 0x1E, G: 0x88, B: 0xE5, A: 0xFF},
	{R: 0x43, G: 0xA0, B: 0x47, A: 0xFF},
	{R: 0xF4, G: 0x51, B: 0x1E, A: 0xFF},
	{R: 0x8E, G: 0x24, B: 0xAA, A: 0xFF},
	{R: 0x00, G: 0x89, B: 0x7B, A: 0xFF},
	{R: 0x6D, G: 0x4C, B: 0x41, A: 0xFF},
}

func NewAvatarService(log *logger.Logger, blobStore storage.BlobStore) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	parsedFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("could not parse avatar font: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    206,
		DPI:     72,
		Hinting: font.HintingNone,
	})

	return &avatarService{
		log:       serviceLog,
		blobStore: blobStore,
		bgColors:  avatarPalette,
		fontFace:  face,
	}, nil
}

func (as *avatarService) CreateAndUploadUserAvatar(ctx context.Context, user *types.User) error {
	buf, err := as.GenerateUserAvatar(user)
	if err != nil {
		return err
	}

	// versioned key so a CDN never serves a stale object
	key := fmt.Sprintf("user_avatar/%s/%d.png", user.ID, time.Now().UnixNano())
	if err := as.blobStore.UploadFile(ctx, key, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to upload user avatar: %w", err)
	}
	user.AvatarURL = as.blobStore.GetPublicURL(key)
	return nil
}

func (as *avatarService) GenerateUserAvatar(user *types.User) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	base := as.bgColors[rand.Intn(len(as.bgColors))]
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(user.Name)
	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func computeInitials(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return "?"
	}
	first := strings.ToUpper(string([]rune(parts[0])[:1]))
	if len(parts) == 1 {
		return first
	}
	last := []rune(parts[len(parts)-1])
	return first + strings.ToUpper(string(last[:1]))
}
