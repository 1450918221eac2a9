package email

import (
	"fmt"

	"cartly/internal/models"
)

func (s *Service) generateVerificationHTML(user *models.User, displayName, verificationToken string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Verify your Cartly account</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .container {
            background-color: white;
            padding: 40px;
            border-radius: 12px;
            box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);
        }
        .header {
            text-align: center;
            margin-bottom: 30px;
        }
        .logo {
            font-size: 28px;
            font-weight: bold;
            color: #10b981;
            margin-bottom: 10px;
        }
        .welcome-message {
            font-size: 24px;
            color: #10b981;
            margin-bottom: 20px;
        }
        .content {
            font-size: 16px;
            margin-bottom: 30px;
        }
        .cta-button {
            display: inline-block;
            background-color: #10b981;
            color: white;
            padding: 12px 24px;
            text-decoration: none;
            border-radius: 6px;
            font-weight: 500;
        }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #e9ecef;
            font-size: 14px;
            color: #6c757d;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">Cartly</div>
            <div class="welcome-message">Welcome %s!</div>
        </div>

        <div class="content">
            <p>Thanks for signing up for Cartly, your personal shopping list companion.</p>

            <p><strong>To finish setting up your account, please verify your email address by clicking the link below:</strong></p>

            <p style="text-align: center; margin: 30px 0;">
                <a href="%s/verify/%s" class="cta-button">Verify Your Account</a>
            </p>

            <p style="font-size: 14px; color: #6c757d;">This verification link will expire in 24 hours.</p>

            <p>With Cartly, you can:</p>
            <ul>
                <li>🛒 Keep all your shopping lists in one place</li>
                <li>✅ Tick items off as you shop</li>
                <li>📊 See what you buy most and how lists progress</li>
            </ul>
        </div>

        <div class="footer">
            <p>Happy shopping!</p>
            <p>The Cartly Team</p>
            <p style="margin-top: 20px; font-size: 12px;">
                This email was sent to %s. If you did not create this account, you can ignore this message.
            </p>
        </div>
    </div>
</body>
</html>`, displayName, s.baseURL, verificationToken, user.Email)
}

func (s *Service) generateVerificationText(user *models.User, displayName, verificationToken string) string {
	return fmt.Sprintf(`Welcome %s!

Thanks for signing up for Cartly, your personal shopping list companion.

To finish setting up your account, please verify your email address by visiting:
%s/verify/%s

This verification link will expire in 24 hours.

With Cartly, you can:
- Keep all your shopping lists in one place
- Tick items off as you shop
- See what you buy most and how lists progress

Happy shopping!
The Cartly Team

This email was sent to %s. If you did not create this account, you can ignore this message.`,
		displayName, s.baseURL, verificationToken, user.Email)
}
