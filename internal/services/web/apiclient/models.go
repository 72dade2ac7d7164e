package apiclient

// User is the API's public user record.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// Passport describes one warranty passport: a product line and the serial
// number range it covers.
type Passport struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Model            string `json:"model"`
	SerialPrefix     string `json:"serialPrefix"`
	FromSerialNumber int64  `json:"fromSerialNumber"`
	ToSerialNumber   int64  `json:"toSerialNumber"`
	WarrantyMonths   int64  `json:"warrantyMonths"`
}

// Input returns the writable fields of p.
func (p Passport) Input() PassportInput {
	return PassportInput{
		Name:             p.Name,
		Model:            p.Model,
		SerialPrefix:     p.SerialPrefix,
		FromSerialNumber: p.FromSerialNumber,
		ToSerialNumber:   p.ToSerialNumber,
		WarrantyMonths:   p.WarrantyMonths,
	}
}

// PassportInput is the body of create and update calls.
type PassportInput struct {
	Name             string `json:"name"`
	Model            string `json:"model"`
	SerialPrefix     string `json:"serialPrefix"`
	FromSerialNumber int64  `json:"fromSerialNumber"`
	ToSerialNumber   int64  `json:"toSerialNumber"`
	WarrantyMonths   int64  `json:"warrantyMonths"`
}

// LoginRequest is the body of POST /users/login. Username is the email.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the signed-in user.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegistrationRequest is the body of POST /users/registration.
// PurchaseDate uses the YYYY-MM-DD layout.
type RegistrationRequest struct {
	FullName           string `json:"fullName"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	PurchaseDate       string `json:"purchaseDate"`
	DeviceSerialNumber string `json:"deviceSerialNumber"`
}
