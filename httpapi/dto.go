package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/features/query/memberstatus"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// ---------- requests ----------

type registerMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

type bookRequest struct {
	BookID string `json:"book_id" binding:"required"`
}

type issueFineRequest struct {
	BookID string          `json:"book_id"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

type addBookCopiesRequest struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Copies int    `json:"copies" binding:"required"`
}

// ---------- responses ----------

type outcomeResponse struct {
	Message    string `json:"message"`
	Idempotent bool   `json:"idempotent,omitempty"`
}

func toOutcome(result shell.HandlerResult) outcomeResponse {
	return outcomeResponse{Message: result.Message, Idempotent: result.Idempotent}
}

type memberResponse struct {
	UserID          string     `json:"user_id"`
	Name            string     `json:"name"`
	RestrictedUntil *time.Time `json:"restricted_until,omitempty"`
}

func toMember(user circulation.User) memberResponse {
	return memberResponse{UserID: user.ID, Name: user.Name, RestrictedUntil: user.RestrictedUntil}
}

type bookResponse struct {
	BookID          string `json:"book_id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	CopiesAvailable int    `json:"copies_available"`
	CopiesBorrowed  int    `json:"copies_borrowed"`
	BorrowCount     int    `json:"borrow_count"`
}

func toBook(book circulation.Book) bookResponse {
	return bookResponse{
		BookID:          book.ID,
		ISBN:            book.ISBN,
		Title:           book.Title,
		CopiesAvailable: book.CopiesAvailable,
		CopiesBorrowed:  book.CopiesBorrowed,
		BorrowCount:     book.BorrowCount,
	}
}

type reservationResponse struct {
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	BookID        string    `json:"book_id"`
	Status        string    `json:"status"`
	ReservedAt    time.Time `json:"reserved_at"`
	ReservedUntil time.Time `json:"reserved_until"`
}

func toReservation(reservation circulation.Reservation) reservationResponse {
	return reservationResponse{
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		BookID:        reservation.BookID,
		Status:        string(reservation.Status),
		ReservedAt:    reservation.ReservationDate,
		ReservedUntil: reservation.ReservedUntil,
	}
}

type loanResponse struct {
	LoanID     string     `json:"loan_id"`
	UserID     string     `json:"user_id"`
	BookID     string     `json:"book_id"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

func toLoan(loan circulation.Loan) loanResponse {
	return loanResponse{
		LoanID:     loan.ID,
		UserID:     loan.UserID,
		BookID:     loan.BookID,
		BorrowedAt: loan.BorrowDate,
		DueDate:    loan.DueDate,
		ReturnedAt: loan.ReturnDate,
	}
}

type fineResponse struct {
	FineID    string     `json:"fine_id"`
	UserID    string     `json:"user_id"`
	BookID    *string    `json:"book_id,omitempty"`
	Amount    string     `json:"amount"`
	Status    string     `json:"status"`
	Reason    string     `json:"reason"`
	CreatedAt time.Time  `json:"created_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

func toFine(fine circulation.Fine) fineResponse {
	return fineResponse{
		FineID:    fine.ID,
		UserID:    fine.UserID,
		BookID:    fine.BookID,
		Amount:    fine.Amount.StringFixed(2),
		Status:    string(fine.Status),
		Reason:    fine.Reason,
		CreatedAt: fine.CreatedAt,
		PaidAt:    fine.PaidAt,
	}
}

type reservationResult struct {
	outcomeResponse
	Reservation reservationResponse `json:"reservation"`
}

type loanResult struct {
	outcomeResponse
	Loan loanResponse  `json:"loan"`
	Fine *fineResponse `json:"fine,omitempty"`
}

type fineResult struct {
	outcomeResponse
	Fine fineResponse `json:"fine"`
}

type bookResult struct {
	outcomeResponse
	Book bookResponse `json:"book"`
}

type memberResult struct {
	outcomeResponse
	Member memberResponse `json:"member"`
}

type openLoanResponse struct {
	LoanID      string    `json:"loan_id"`
	BookID      string    `json:"book_id"`
	BorrowedAt  time.Time `json:"borrowed_at"`
	DueDate     time.Time `json:"due_date"`
	Overdue     bool      `json:"overdue"`
	DaysOverdue int       `json:"days_overdue"`
	AccruedFine string    `json:"accrued_fine"`
}

type activeReservationResponse struct {
	ReservationID string    `json:"reservation_id"`
	BookID        string    `json:"book_id"`
	Status        string    `json:"status"`
	ReservedUntil time.Time `json:"reserved_until"`
}

type memberStatusResponse struct {
	UserID             string                      `json:"user_id"`
	Name               string                      `json:"name"`
	Restricted         bool                        `json:"restricted"`
	RestrictedUntil    *time.Time                  `json:"restricted_until,omitempty"`
	UnpaidFineCount    int                         `json:"unpaid_fine_count"`
	UnpaidFineTotal    string                      `json:"unpaid_fine_total"`
	CanReserve         bool                        `json:"can_reserve"`
	OpenLoans          []openLoanResponse          `json:"open_loans"`
	ActiveReservations []activeReservationResponse `json:"active_reservations"`
}

func toMemberStatus(status memberstatus.MemberStatus) memberStatusResponse {
	response := memberStatusResponse{
		UserID:             status.UserID,
		Name:               status.Name,
		Restricted:         status.Restricted,
		RestrictedUntil:    status.RestrictedUntil,
		UnpaidFineCount:    status.UnpaidFineCount,
		UnpaidFineTotal:    status.UnpaidFineTotal.StringFixed(2),
		CanReserve:         status.CanReserve,
		OpenLoans:          make([]openLoanResponse, 0, len(status.OpenLoans)),
		ActiveReservations: make([]activeReservationResponse, 0, len(status.ActiveReservations)),
	}

	for _, loan := range status.OpenLoans {
		response.OpenLoans = append(response.OpenLoans, openLoanResponse{
			LoanID:      loan.LoanID,
			BookID:      loan.BookID,
			BorrowedAt:  loan.BorrowedAt,
			DueDate:     loan.DueDate,
			Overdue:     loan.Overdue,
			DaysOverdue: loan.DaysOverdue,
			AccruedFine: loan.AccruedFine.StringFixed(2),
		})
	}

	for _, reservation := range status.ActiveReservations {
		response.ActiveReservations = append(response.ActiveReservations, activeReservationResponse{
			ReservationID: reservation.ReservationID,
			BookID:        reservation.BookID,
			Status:        reservation.Status,
			ReservedUntil: reservation.ReservedUntil,
		})
	}

	return response
}

type sweepResponse struct {
	outcomeResponse
	Job string `json:"job"`
}
