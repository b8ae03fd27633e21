package wellness

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/models"
)

// Registration is the input of Register.
type Registration struct {
	Username string
	Email    string
	Password string
	Dob      string // any date form, optional
	Gender   string
}

// Register creates an unverified account and emails it a verification code.
// The returned record carries neither the password hash nor the code.
func (s *Service) Register(ctx context.Context, r Registration) (recstore.Record, error) {
	required := recstore.Data{}
	optionalText(required, "username", strings.TrimSpace(r.Username))
	optionalText(required, "email", strings.TrimSpace(r.Email))
	optionalText(required, "password", r.Password)
	if missing := s.tables.Users.Schema().MissingRequired(required); len(missing) > 0 {
		return recstore.Record{}, &ValidationError{Fields: missing, Reason: "please enter all fields"}
	}

	email := NormalizeEmail(r.Email)
	if _, exists := s.tables.Users.FindOne(ctx, recstore.Match(models.User.Email.Eq(email))); exists {
		return recstore.Record{}, ErrUserExists
	}

	hash, err := HashPassword(r.Password)
	if err != nil {
		return recstore.Record{}, err
	}
	otp, err := s.newOTP()
	if err != nil {
		return recstore.Record{}, err
	}

	if err := s.mailer.Send(ctx, email, "Your Verification Code", "Your OTP is: "+otp); err != nil {
		return recstore.Record{}, fmt.Errorf("send verification email: %w", err)
	}

	data := recstore.Data{
		"username":   strings.TrimSpace(r.Username),
		"email":      email,
		"password":   hash,
		"otp":        otp,
		"otpExpires": s.now().Add(s.otpTTL),
		"isVerified": false,
		"age":        nil,
	}
	optionalText(data, "gender", r.Gender)
	if r.Dob != "" {
		data["dob"] = r.Dob
		if dob, ok := parseDay(r.Dob); ok {
			data["age"] = ageOn(dob, s.now())
		}
	}

	user, err := s.tables.Users.Create(ctx, data)
	if err != nil {
		return recstore.Record{}, err
	}
	return publicUser(user), nil
}

// VerifyOTP marks the account verified when otp matches the emailed code
// and has not expired.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) (recstore.Record, error) {
	user, ok := s.tables.Users.FindOne(ctx, recstore.Match(models.User.Email.Eq(NormalizeEmail(email))))
	if !ok {
		return recstore.Record{}, ErrNotFound
	}
	if verified, _ := user.Value("isVerified").Bool(); verified {
		return recstore.Record{}, ErrAlreadyVerified
	}

	stored, _ := user.Value("otp").Str()
	if stored == "" || stored != otp || s.otpExpired(user) {
		return recstore.Record{}, ErrInvalidOTP
	}

	user.Set("isVerified", true)
	user.Set("otp", nil)
	user.Set("otpExpires", nil)
	if err := s.tables.Users.Save(ctx, &user); err != nil {
		return recstore.Record{}, err
	}
	return publicUser(user), nil
}

func (s *Service) otpExpired(user recstore.Record) bool {
	raw, ok := user.Value("otpExpires").Str()
	if !ok {
		return true
	}
	expires, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return true
	}
	return expires.Before(s.now())
}

// Login checks the credentials and returns the account.
func (s *Service) Login(ctx context.Context, email, password string) (recstore.Record, error) {
	user, ok := s.tables.Users.FindOne(ctx, recstore.Match(models.User.Email.Eq(NormalizeEmail(email))))
	if !ok {
		return recstore.Record{}, ErrInvalidCredentials
	}
	hash, _ := user.Value("password").Str()
	match, err := VerifyPassword(hash, password)
	if err != nil || !match {
		return recstore.Record{}, ErrInvalidCredentials
	}
	return publicUser(user), nil
}

// Profile is an account as shown to its owner.
type Profile struct {
	User recstore.Record
	// Birthday is true when today is the user's birthday.
	Birthday bool
}

// Profile returns the account of userID without its password.
func (s *Service) Profile(ctx context.Context, userID int64) (Profile, error) {
	user, ok := s.tables.Users.FindByID(ctx, userID)
	if !ok {
		return Profile{}, ErrNotFound
	}
	p := Profile{User: publicUser(user)}
	if raw, ok := user.Value("dob").Str(); ok {
		if dob, ok := parseDay(raw); ok {
			now := s.now()
			p.Birthday = dob.Month() == now.Month() && dob.Day() == now.Day()
		}
	}
	return p, nil
}

// ProfileUpdate holds the editable profile fields. Zero values are left unchanged.
type ProfileUpdate struct {
	Age            int64
	Gender         string
	Username       string
	Theme          string
	ProfilePicture string
	Height         float64
	Weight         float64
}

// UpdateProfile applies the non-zero fields of u to the account.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, u ProfileUpdate) (recstore.Record, error) {
	user, ok := s.tables.Users.FindByID(ctx, userID)
	if !ok {
		return recstore.Record{}, ErrNotFound
	}
	if u.Age != 0 {
		user.Set("age", u.Age)
	}
	if u.Gender != "" {
		user.Set("gender", u.Gender)
	}
	if u.Username != "" {
		user.Set("username", u.Username)
	}
	if u.Theme != "" {
		user.Set("theme", u.Theme)
	}
	if u.ProfilePicture != "" {
		user.Set("profilePicture", u.ProfilePicture)
	}
	if u.Height != 0 {
		user.Set("height", u.Height)
	}
	if u.Weight != 0 {
		user.Set("weight", u.Weight)
	}
	if err := s.tables.Users.Save(ctx, &user); err != nil {
		return recstore.Record{}, err
	}
	return publicUser(user), nil
}

// ChangePassword replaces the password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if next == "" {
		return &ValidationError{Fields: []string{"newPassword"}, Reason: "password must not be empty"}
	}
	user, ok := s.tables.Users.FindByID(ctx, userID)
	if !ok {
		return ErrNotFound
	}
	hash, _ := user.Value("password").Str()
	if match, err := VerifyPassword(hash, current); err != nil || !match {
		return ErrInvalidCredentials
	}

	newHash, err := HashPassword(next)
	if err != nil {
		return err
	}
	user.Set("password", newHash)
	return s.tables.Users.Save(ctx, &user)
}

// SendBirthdayWish emails the user a birthday greeting.
func (s *Service) SendBirthdayWish(ctx context.Context, userID int64) error {
	user, ok := s.tables.Users.FindByID(ctx, userID)
	if !ok {
		return ErrNotFound
	}
	email, _ := user.Value("email").Str()
	name, _ := user.Value("username").Str()
	body := fmt.Sprintf("Happy Birthday, %s!\n\nWishing you a fantastic day filled with joy, laughter, and checked-off habits!\n\nBest Wishes,\nThe Routine Rocket Team", name)
	return s.mailer.Send(ctx, email, "Happy Birthday, "+name+"!", body)
}

// publicUser strips the secrets from an account record.
func publicUser(user recstore.Record) recstore.Record {
	out := user.Clone()
	out.Delete("password")
	out.Delete("otp")
	return out
}

// parseDay reads a day through the DATEONLY caster.
func parseDay(s string) (time.Time, bool) {
	v, outcome := recstore.Cast(recstore.Text(s), recstore.TypeDateOnly)
	if outcome != recstore.CastApplied {
		return time.Time{}, false
	}
	day, _ := v.Str()
	t, err := time.Parse(time.DateOnly, day)
	return t, err == nil
}

// ageOn returns the age in whole years of someone born on dob at now.
func ageOn(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
