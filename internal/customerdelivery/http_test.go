package customerdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/go-finbook/finbook/internal/domain"
	"github.com/go-finbook/finbook/internal/middleware"
	"github.com/go-finbook/finbook/pkg/errorspkg"
	"github.com/go-finbook/finbook/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func randomCustomer() domain.Customer {
	return domain.Customer{
		ID:        "3b1d18ec-96a4-4d2a-b63c-6a2d71a2cb35",
		CPF:       randompkg.CPF(),
		Name:      randompkg.Name(),
		Statement: []domain.Entry{},
	}
}

func newAuthServer(t *testing.T, customer domain.Customer) (*gin.Engine, *middleware.MockGate) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	gate := middleware.NewMockGate(ctrl)
	gate.EXPECT().
		VerifyCPF(gomock.Any(), gomock.Eq(customer.CPF)).
		AnyTimes().
		Return(customer, nil)

	server := gin.New()
	server.Use(middleware.AuthMiddleware(gate))

	return server, gate
}

func decodeError(t *testing.T, body *bytes.Buffer) string {
	t.Helper()

	var res struct {
		Error string `json:"error"`
	}

	if err := json.NewDecoder(body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	return res.Error
}

func TestCreate(t *testing.T) {
	customer := randomCustomer()

	type requestBody struct {
		CPF  string `json:"cpf"`
		Name string `json:"name"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(body *bytes.Buffer)
	}{
		{
			name:        "OK",
			requestBody: requestBody{CPF: customer.CPF, Name: customer.Name},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(customer.CPF), gomock.Eq(customer.Name)).
					Times(1).
					Return(customer, nil)
				service.EXPECT().
					List(gomock.Any()).
					Times(1).
					Return([]domain.Customer{customer}, nil)
			},
			wantStatusCode: http.StatusCreated,
			checkData: func(body *bytes.Buffer) {
				var got []domain.Customer
				if err := json.NewDecoder(body).Decode(&got); err != nil {
					t.Fatalf("Decoding response body error: %v", err)
				}

				if diff := cmp.Diff([]domain.Customer{customer}, got); diff != "" {
					t.Errorf("customer list mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:        "MissingCPF",
			requestBody: requestBody{Name: customer.Name},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "CPF field is required",
		},
		{
			name:        "MissingName",
			requestBody: requestBody{CPF: customer.CPF},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Name field is required",
		},
		{
			name:        "CustomerAlreadyExists",
			requestBody: requestBody{CPF: customer.CPF, Name: customer.Name},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(customer.CPF), gomock.Eq(customer.Name)).
					Times(1).
					Return(domain.Customer{}, domain.ErrCustomerAlreadyExists)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrCustomerAlreadyExists.Error(),
		},
		{
			name:        "InternalError",
			requestBody: requestBody{CPF: customer.CPF, Name: customer.Name},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(customer.CPF), gomock.Eq(customer.Name)).
					Times(1).
					Return(domain.Customer{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			service := NewMockService(ctrl)
			handler := NewHandler(service)

			server := gin.New()
			server.POST("/account", handler.Create)

			tc.buildStubs(service)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/account", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if tc.wantError != "" {
				if got := decodeError(t, recorder.Body); got != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, got, tc.wantError)
				}
			} else {
				tc.checkData(recorder.Body)
			}
		})
	}
}

func TestGet(t *testing.T) {
	customer := randomCustomer()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := NewMockService(ctrl)
	handler := NewHandler(service)

	server, _ := newAuthServer(t, customer)
	server.GET("/account", handler.Get)

	req, err := http.NewRequest(http.MethodGet, "/account", nil)
	if err != nil {
		t.Fatalf("Creating request error: %v", err)
	}

	req.Header.Set(middleware.CPFHeaderKey, customer.CPF)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	if got := recorder.Code; got != http.StatusOK {
		t.Errorf("Status code: got %v, want %v", got, http.StatusOK)
	}

	var got domain.Customer
	if err := json.NewDecoder(recorder.Body).Decode(&got); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	if diff := cmp.Diff(customer, got); diff != "" {
		t.Errorf("customer mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	customer := randomCustomer()
	newName := randompkg.Name()

	renamed := customer
	renamed.Name = newName

	type requestBody struct {
		Name string `json:"name"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "OK",
			requestBody: requestBody{Name: newName},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					UpdateName(gomock.Any(), gomock.Eq(customer.CPF), gomock.Eq(newName)).
					Times(1).
					Return(renamed, nil)
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:        "MissingName",
			requestBody: requestBody{},
			buildStubs: func(service *MockService) {
				service.EXPECT().UpdateName(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Name field is required",
		},
		{
			name:        "InternalError",
			requestBody: requestBody{Name: newName},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					UpdateName(gomock.Any(), gomock.Eq(customer.CPF), gomock.Eq(newName)).
					Times(1).
					Return(domain.Customer{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			service := NewMockService(ctrl)
			handler := NewHandler(service)

			server, _ := newAuthServer(t, customer)
			server.PUT("/account", handler.Update)

			tc.buildStubs(service)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPut, "/account", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			req.Header.Set(middleware.CPFHeaderKey, customer.CPF)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if tc.wantError != "" {
				if got := decodeError(t, recorder.Body); got != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, got, tc.wantError)
				}

				return
			}

			var got domain.Customer
			if err := json.NewDecoder(recorder.Body).Decode(&got); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if diff := cmp.Diff(renamed, got); diff != "" {
				t.Errorf("customer mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	customer := randomCustomer()

	testCases := []struct {
		name           string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Eq(customer.CPF)).
					Times(1).
					Return(nil)
				service.EXPECT().
					List(gomock.Any()).
					Times(1).
					Return([]domain.Customer{}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InternalError",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Eq(customer.CPF)).
					Times(1).
					Return(errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			service := NewMockService(ctrl)
			handler := NewHandler(service)

			server, _ := newAuthServer(t, customer)
			server.DELETE("/account", handler.Delete)

			tc.buildStubs(service)

			req, err := http.NewRequest(http.MethodDelete, "/account", nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			req.Header.Set(middleware.CPFHeaderKey, customer.CPF)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if tc.wantError != "" {
				if got := decodeError(t, recorder.Body); got != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, got, tc.wantError)
				}

				return
			}

			var got []domain.Customer
			if err := json.NewDecoder(recorder.Body).Decode(&got); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if len(got) != 0 {
				t.Errorf("remaining customers: got %v, want none", got)
			}
		})
	}
}
