package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tasktrack/pkg/logger"
	"tasktrack/pkg/utils"
)

// SignatureVerifier checks the expires/signature pair of a signed file URL
type SignatureVerifier interface {
	VerifySignature(path, expires, signature string) error
}

// SignedFiles guards the static mount of local storage; prefix is the mount path ("/files")
func SignedFiles(prefix string, verifier SignatureVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path, err := url.PathUnescape(strings.TrimPrefix(c.Path(), prefix))
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid path")
		}

		if err := verifier.VerifySignature(path, c.Query("expires"), c.Query("signature")); err != nil {
			logger.WarnContext(c.UserContext(), "Rejected file request", "path", path)
			return utils.ForbiddenResponse(c, "Invalid or expired signature")
		}
		return c.Next()
	}
}
