package common

import log "github.com/sirupsen/logrus"

// Prints an error log message when an operation of component fails.
func LogOperationError(component string, function string, err error) {
	log.WithFields(
		log.Fields{
			"Error":   err,
			"Message": "Operation failed",
		},
	).Error(component + ": " + function)
}

// Prints an error log message when decoding an encoded key fails.
func LogDecodeError(component string, function string, format string, err error) {
	log.WithFields(
		log.Fields{
			"Format":  format,
			"Error":   err,
			"Message": "Error while decoding the encoded key",
		},
	).Error(component + ": " + function)
}

// Prints a debug log message for a completed key lifecycle event. Only public
// values are allowed in fields.
func LogKeyEvent(component string, function string, curve string, publicID string) {
	log.WithFields(
		log.Fields{
			"Curve":    curve,
			"PublicID": publicID,
		},
	).Debug(component + ": " + function)
}

// Prints an error log message when the keystore fails to persist or load.
func LogStoreError(component string, function string, id string, err error) {
	log.WithFields(log.Fields{
		"ID":      id,
		"Error":   err,
		"Message": "Error accessing the keystore",
	}).Error(component + ": " + function)
}

// SetLogLevel parses level and applies it, keeping the current level on error.
func SetLogLevel(level string) {
	if level == "" {
		return
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithError(err).Warn("invalid log level, keeping current")
		return
	}
	log.SetLevel(lvl)
}
