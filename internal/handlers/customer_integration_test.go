package handlers_test

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"store/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	customerDetailsURL = "/api/customer-details"
	usersURL           = "/api/users"
	shoppingCartsURL   = "/api/shopping-carts"
	productOrdersURL   = "/api/product-orders"
)

func (e *testEnv) insertUser() *models.User {
	e.t.Helper()

	login := "user-" + uuid.NewString()[:8]
	user := &models.User{Login: login, Email: login + "@example.com", Activated: true, PasswordHash: "hash"}
	require.NoError(e.t, e.db.Create(user).Error)
	return user
}

func createCustomerDetailsEntity(user *models.User) *models.CustomerDetails {
	return &models.CustomerDetails{
		Gender:       models.GenderMale,
		Phone:        "AAAAAAAAAA",
		AddressLine1: "AAAAAAAAAA",
		City:         "AAAAAAAAAA",
		Country:      "AAAAAAAAAA",
		User:         &models.User{Base: models.Base{ID: user.ID}},
	}
}

func (e *testEnv) insertCustomerDetails() *models.CustomerDetails {
	e.t.Helper()

	user := e.insertUser()
	customer := createCustomerDetailsEntity(user)
	customer.UserID = user.ID
	require.NoError(e.t, e.db.Omit("User").Create(customer).Error)
	return customer
}

func TestCreateCustomerDetails(t *testing.T) {
	env := setupApp(t)
	user := env.insertUser()

	resp, body := env.do("POST", customerDetailsURL, createCustomerDetailsEntity(user), contentTypeJSON)

	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, "storeApp.customerDetails.created", resp.Header.Get("X-storeApp-alert"))
	assert.Equal(t, int64(1), env.count(&models.CustomerDetails{}))

	created := decode[models.CustomerDetails](t, body)
	require.NotNil(t, created.User)
	assert.Equal(t, user.ID, created.User.ID)

	var stored models.CustomerDetails
	require.NoError(t, env.db.First(&stored, created.ID).Error)
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, models.GenderMale, stored.Gender)
}

func TestCreateCustomerDetailsRequiredFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(c *models.CustomerDetails)
	}{
		{"gender", func(c *models.CustomerDetails) { c.Gender = "" }},
		{"phone", func(c *models.CustomerDetails) { c.Phone = "" }},
		{"addressLine1", func(c *models.CustomerDetails) { c.AddressLine1 = "" }},
		{"city", func(c *models.CustomerDetails) { c.City = "" }},
		{"country", func(c *models.CustomerDetails) { c.Country = "" }},
		{"user", func(c *models.CustomerDetails) { c.User = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			env := setupApp(t)

			customer := createCustomerDetailsEntity(env.insertUser())
			tt.mutate(customer)
			resp, body := env.do("POST", customerDetailsURL, customer, contentTypeJSON)

			problem := assertProblem(t, resp, body, http.StatusBadRequest, "")
			require.Len(t, problem.FieldErrors, 1)
			assert.Equal(t, tt.field, problem.FieldErrors[0].Field)
			assert.Zero(t, env.count(&models.CustomerDetails{}))
		})
	}
}

func TestCreateCustomerDetailsUnknownUser(t *testing.T) {
	env := setupApp(t)

	customer := createCustomerDetailsEntity(&models.User{Base: models.Base{ID: 4242}})
	resp, body := env.do("POST", customerDetailsURL, customer, contentTypeJSON)

	problem := assertProblem(t, resp, body, http.StatusBadRequest, "")
	require.Len(t, problem.FieldErrors, 1)
	assert.Equal(t, "user", problem.FieldErrors[0].Field)
	assert.Zero(t, env.count(&models.CustomerDetails{}))
}

func TestCreateCustomerDetailsUserAlreadyTaken(t *testing.T) {
	env := setupApp(t)
	existing := env.insertCustomerDetails()

	customer := createCustomerDetailsEntity(&models.User{Base: models.Base{ID: existing.UserID}})
	resp, body := env.do("POST", customerDetailsURL, customer, contentTypeJSON)

	assertProblem(t, resp, body, http.StatusBadRequest, "")
	assert.Equal(t, int64(1), env.count(&models.CustomerDetails{}))
}

func TestGetCustomerDetailsLoadsUser(t *testing.T) {
	env := setupApp(t)
	customer := env.insertCustomerDetails()

	resp, body := env.do("GET", customerDetailsURL+"/"+strconv.FormatInt(customer.ID, 10), nil, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[models.CustomerDetails](t, body)
	require.NotNil(t, got.User)
	assert.Equal(t, customer.UserID, got.User.ID)
	assert.True(t, strings.HasPrefix(got.User.Login, "user-"))
	assert.NotContains(t, string(body), "hash")
}

func TestUpdateCustomerDetails(t *testing.T) {
	env := setupApp(t)
	customer := env.insertCustomerDetails()
	url := customerDetailsURL + "/" + strconv.FormatInt(customer.ID, 10)

	update := createCustomerDetailsEntity(&models.User{Base: models.Base{ID: customer.UserID}})
	update.ID = customer.ID
	update.Gender = models.GenderFemale
	update.City = "BBBBBBBBBB"
	resp, body := env.do("PUT", url, update, contentTypeJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = env.do("PATCH", url, fmt.Sprintf(`{"id":%d,"addressLine2":"BBBBBBBBBB"}`, customer.ID), contentTypeMergePatch)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var stored models.CustomerDetails
	require.NoError(t, env.db.First(&stored, customer.ID).Error)
	assert.Equal(t, models.GenderFemale, stored.Gender)
	assert.Equal(t, "BBBBBBBBBB", stored.City)
	require.NotNil(t, stored.AddressLine2)
	assert.Equal(t, "BBBBBBBBBB", *stored.AddressLine2)
	assert.Equal(t, customer.UserID, stored.UserID)
}

func TestDeleteCustomerDetails(t *testing.T) {
	env := setupApp(t)
	customer := env.insertCustomerDetails()

	resp, _ := env.do("DELETE", customerDetailsURL+"/"+strconv.FormatInt(customer.ID, 10), nil, "")

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Zero(t, env.count(&models.CustomerDetails{}))
}

func TestCreateUser(t *testing.T) {
	env := setupApp(t)

	resp, body := env.do("POST", usersURL, `{"login":"JDoe","email":"jdoe@example.com","password":"secret123","activated":true}`, contentTypeJSON)

	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), "secret123")

	created := decode[models.User](t, body)
	assert.Equal(t, "jdoe", created.Login)

	var stored models.User
	require.NoError(t, env.db.First(&stored, created.ID).Error)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "secret123", stored.PasswordHash)

	resp, body = env.do("POST", usersURL, `{"login":"jdoe","email":"other@example.com"}`, contentTypeJSON)
	assertProblem(t, resp, body, http.StatusBadRequest, "userexists")

	resp, body = env.do("POST", usersURL, `{"login":"other","email":"JDOE@example.com"}`, contentTypeJSON)
	assertProblem(t, resp, body, http.StatusBadRequest, "emailexists")
}

func TestShoppingCartAndProductOrders(t *testing.T) {
	env := setupApp(t)
	customer := env.insertCustomerDetails()
	product := env.insertProduct()

	cart := &models.ShoppingCart{
		PlacedDate:      time.Now().UTC().Truncate(time.Second),
		Status:          models.OrderStatusPending,
		TotalPrice:      decimal.NewNullDecimal(decimal.RequireFromString("10.50")),
		PaymentMethod:   models.PaymentMethodCreditCard,
		CustomerDetails: &models.CustomerDetails{Base: models.Base{ID: customer.ID}},
	}
	resp, body := env.do("POST", shoppingCartsURL, cart, contentTypeJSON)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	createdCart := decode[models.ShoppingCart](t, body)
	assert.Equal(t, "storeApp.shoppingCart.created", resp.Header.Get("X-storeApp-alert"))

	order := fmt.Sprintf(`{"quantity":2,"totalPrice":2,"product":{"id":%d},"cart":{"id":%d}}`, product.ID, createdCart.ID)
	resp, body = env.do("POST", productOrdersURL, order, contentTypeJSON)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	createdOrder := decode[models.ProductOrder](t, body)

	resp, body = env.do("GET", productOrdersURL+"/"+strconv.FormatInt(createdOrder.ID, 10), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	gotOrder := decode[models.ProductOrder](t, body)
	require.NotNil(t, gotOrder.Product)
	require.NotNil(t, gotOrder.Cart)
	assert.Equal(t, defaultName, gotOrder.Product.Name)
	assert.Equal(t, models.OrderStatusPending, gotOrder.Cart.Status)
	require.NotNil(t, gotOrder.Quantity)
	assert.Equal(t, 2, *gotOrder.Quantity)

	resp, body = env.do("GET", shoppingCartsURL+"?sort=placedDate,desc", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	carts := decode[[]models.ShoppingCart](t, body)
	require.Len(t, carts, 1)
	assert.True(t, carts[0].TotalPrice.Decimal.Equal(decimal.RequireFromString("10.5")))
	assert.True(t, cart.PlacedDate.Equal(carts[0].PlacedDate))
	require.NotNil(t, carts[0].CustomerDetails)
	assert.Equal(t, customer.ID, carts[0].CustomerDetails.ID)
}

func TestCreateProductOrderMissingReferences(t *testing.T) {
	env := setupApp(t)

	resp, body := env.do("POST", productOrdersURL, `{"quantity":1,"totalPrice":1,"product":{"id":777}}`, contentTypeJSON)

	problem := assertProblem(t, resp, body, http.StatusBadRequest, "")
	fields := make([]string, 0, len(problem.FieldErrors))
	for _, fe := range problem.FieldErrors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"product", "cart"}, fields)
	assert.Zero(t, env.count(&models.ProductOrder{}))
}

func TestCreateShoppingCartNegativeTotal(t *testing.T) {
	env := setupApp(t)
	customer := env.insertCustomerDetails()

	cart := fmt.Sprintf(`{"placedDate":"2024-01-02T03:04:05Z","status":"PAID","totalPrice":-1,"paymentMethod":"IDEAL","customerDetails":{"id":%d}}`, customer.ID)
	resp, body := env.do("POST", shoppingCartsURL, cart, contentTypeJSON)

	problem := assertProblem(t, resp, body, http.StatusBadRequest, "")
	require.Len(t, problem.FieldErrors, 1)
	assert.Equal(t, "totalPrice", problem.FieldErrors[0].Field)
}
