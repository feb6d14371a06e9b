package models

// Models mirror the JSON shapes of the lending backend's REST API.
// The backend owns validation and persistence; fields here are carried
// as-is between forms, pages and the API.

// User is the authenticated operator of the admin console.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// AuthResponse is returned by the signin and signup endpoints.
type AuthResponse struct {
	Token    string `json:"token"`
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Message  string `json:"message,omitempty"`
}

// ValidateResponse is returned by the token validation endpoint.
type ValidateResponse struct {
	User *User `json:"user"`
}

type Client struct {
	ID            string `json:"id,omitempty"`
	ClientNumber  string `json:"clientNumber,omitempty"`
	Name          string `json:"name"`
	CIN           string `json:"cin,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	Address       string `json:"address,omitempty"`
	Job           string `json:"job,omitempty"`
	JobID         string `json:"jobId,omitempty"`
	Workplace     string `json:"workplace,omitempty"`
	WorkerNumber  string `json:"workerNumber,omitempty"`
	BankAccount   string `json:"bankAccountNumber,omitempty"`
	MonthlySalary string `json:"monthlySalary,omitempty"`
}

// ClientSearch carries the optional filters of the client search endpoint.
type ClientSearch struct {
	Name         string
	Job          string
	ClientNumber string
	CIN          string
	PhoneNumber  string
	Workplace    string
	Address      string
	WorkerNumber string
}

// Cession is a wage-assignment contract.
type Cession struct {
	ID                 string  `json:"id,omitempty"`
	ClientID           string  `json:"clientId"`
	ClientName         string  `json:"clientName,omitempty"`
	Status             string  `json:"status,omitempty"`
	SupplierName       string  `json:"supplierName,omitempty"`
	SupplierTaxID      string  `json:"supplierTaxId,omitempty"`
	ItemDescription    string  `json:"itemDescription,omitempty"`
	TotalAmount        float64 `json:"totalAmount,omitempty"`
	MonthlyPayment     float64 `json:"monthlyPayment,omitempty"`
	RemainingBalance   float64 `json:"remainingBalance,omitempty"`
	StartDate          string  `json:"startDate,omitempty"`
	FirstDeductionDate string  `json:"firstDeductionDate,omitempty"`
	CourtName          string  `json:"courtName,omitempty"`
	BookNumber         string  `json:"bookNumber,omitempty"`
	PageNumber         string  `json:"pageNumber,omitempty"`
}

// CessionSearch carries the optional filters of the cession search endpoint.
type CessionSearch struct {
	Name         string
	Job          string
	ClientNumber string
	ClientCIN    string
	Status       string
	PhoneNumber  string
	Workplace    string
	Address      string
	JobID        string
}

type Payment struct {
	ID          string  `json:"id,omitempty"`
	CessionID   string  `json:"cessionId"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"paymentDate,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

type Document struct {
	ID           string `json:"id,omitempty"`
	ClientID     string `json:"clientId,omitempty"`
	CessionID    string `json:"cessionId,omitempty"`
	DocumentType string `json:"documentType,omitempty"`
	FileName     string `json:"fileName,omitempty"`
	ContentType  string `json:"contentType,omitempty"`
	UploadedAt   string `json:"uploadedAt,omitempty"`
}

type Product struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	CategoryID    string  `json:"categoryId,omitempty"`
	CategoryName  string  `json:"categoryName,omitempty"`
	PurchasePrice float64 `json:"purchasePrice,omitempty"`
	SellingPrice  float64 `json:"sellingPrice,omitempty"`
	Quantity      int     `json:"quantity,omitempty"`
	Description   string  `json:"description,omitempty"`
}

type Category struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// StockMovement records an inbound or outbound inventory change.
type StockMovement struct {
	ID                  string  `json:"id,omitempty"`
	ProductID           string  `json:"productId"`
	ProductName         string  `json:"productName,omitempty"`
	Type                string  `json:"type,omitempty"`
	Quantity            int     `json:"quantity"`
	SellingPriceAtSale  float64 `json:"sellingPriceAtSale,omitempty"`
	PurchasePriceAtSale float64 `json:"purchasePrice,omitempty"`
	Notes               string  `json:"notes,omitempty"`
	CreatedAt           string  `json:"createdAt,omitempty"`

	// Product is populated by some backend responses instead of the
	// flat productName field.
	Product *Product `json:"product,omitempty"`
}

type Expense struct {
	ID          string  `json:"id,omitempty"`
	UserID      string  `json:"userId,omitempty"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date,omitempty"`
}

type Income struct {
	ID          string  `json:"id,omitempty"`
	UserID      string  `json:"userId,omitempty"`
	Amount      float64 `json:"amount"`
	Source      string  `json:"source,omitempty"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date,omitempty"`
}

// Page is the paged envelope used by the expense and income listings.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
	Size          int `json:"size"`
}

// CategoryTotal aggregates expenses per category for a month.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// SourceTotal aggregates incomes per source for a month.
type SourceTotal struct {
	Source string  `json:"source"`
	Total  float64 `json:"total"`
}

// MonthlySummary is the combined income/expense summary for one month.
type MonthlySummary struct {
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	Net           float64 `json:"net"`
}

type Workplace struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type Job struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}
