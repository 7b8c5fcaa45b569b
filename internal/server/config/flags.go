package config

import (
	"flag"
	"os"
	"time"

	"github.com/minhtran/taskkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      bearer token validity, hours
//	-o int      OTP validity, minutes
//	-i int      reminder sweep interval, seconds
//	-w int      reminder due-soon window, minutes
//	-k string   mail API key
//	-f string   mail sender address
//	-l string   language-model API key
//	-m string   language-model name
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-o", "-i", "-w", "-k", "-f", "-l", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	otpValidity := fs.Int("o", int(config.OTPValidityDuration.Minutes()), "otp validity (in minutes)")
	reminderInterval := fs.Int("i", int(config.ReminderInterval.Seconds()), "reminder sweep interval (in seconds)")
	reminderWindow := fs.Int("w", int(config.ReminderWindow.Minutes()), "reminder window (in minutes)")

	fs.StringVar(&config.MailAPIKey, "k", config.MailAPIKey, "mail API key")
	fs.StringVar(&config.MailFrom, "f", config.MailFrom, "mail sender address")
	fs.StringVar(&config.LLMAPIKey, "l", config.LLMAPIKey, "language-model API key")
	fs.StringVar(&config.LLMModel, "m", config.LLMModel, "language-model name")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
	config.OTPValidityDuration = time.Duration(*otpValidity) * time.Minute
	config.ReminderInterval = time.Duration(*reminderInterval) * time.Second
	config.ReminderWindow = time.Duration(*reminderWindow) * time.Minute
}
