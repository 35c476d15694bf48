package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// profileCode builds prefix + the last 6 digits of the unix millis + 4 random digits.
func profileCode(prefix string, now time.Time) string {
	stamp := now.UnixMilli() % 1_000_000
	n, err := rand.Int(rand.Reader, big.NewInt(10_000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 10_000)
	}
	return fmt.Sprintf("%s%06d%04d", prefix, stamp, n.Int64())
}

func generateDoctorCode(now time.Time) string {
	return profileCode("DOC", now)
}

func generatePatientCode(now time.Time) string {
	return profileCode("PAT", now)
}

// generateAppointmentCode generates a unique appointment code: APT-YYYYMMDD-XXXXXX
func generateAppointmentCode(slotDate time.Time) string {
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	return fmt.Sprintf("APT-%s-%06X", slotDate.Format("20060102"), randomBytes)
}
