package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	api "github.com/terminalhome/ims-backend/internal/http"
	handler "github.com/terminalhome/ims-backend/internal/http/handlers"
	"github.com/terminalhome/ims-backend/internal/alerts"
	"github.com/terminalhome/ims-backend/internal/forecast"
	"github.com/terminalhome/ims-backend/internal/ledger"
	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/reorder"
	"github.com/terminalhome/ims-backend/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	token         string
	inventoryRepo *repo.InMemoryInventoryRepository
	movementRepo  *repo.InMemoryMovementRepository
	alertRepo     *repo.InMemoryAlertRepository
	ruleRepo      *repo.InMemoryRuleRepository
	forecastRepo  *repo.InMemoryForecastRepository
	orderRepo     *repo.InMemoryOrderRepository
)

func init() {
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	inventoryRepo = repo.NewInMemoryInventoryRepository()
	handler.SetInventoryRepo(inventoryRepo)

	movementRepo = repo.NewInMemoryMovementRepository(inventoryRepo)
	handler.SetMovementRepo(movementRepo)

	alertRepo = repo.NewInMemoryAlertRepository()
	engine := alerts.NewEngine(alertRepo)
	handler.SetAlertEngine(engine)
	handler.SetLedger(ledger.New(movementRepo, engine))

	ruleRepo = repo.NewInMemoryRuleRepository()
	handler.SetAdvisor(reorder.NewAdvisor(inventoryRepo, ruleRepo, engine))

	forecastRepo = repo.NewInMemoryForecastRepository()
	orderRepo = repo.NewInMemoryOrderRepository()
	handler.SetOrchestrator(forecast.NewOrchestrator(inventoryRepo, orderRepo, forecastRepo, nil, 0))

	statsRepo := repo.NewInMemoryStatsRepository()
	handler.SetStatsRepo(statsRepo)
	statsRepo.SetRepositories(inventoryRepo, movementRepo, alertRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
	})
}

func clearAll() {
	inventoryRepo.Clear()
	movementRepo.Clear()
	alertRepo.Clear()
	forecastRepo.Clear()
	ruleRepo.SetRules(nil)
	orderRepo.SetItems(nil)
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func createInventoryLine(r http.Handler, line handler.InventoryRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(line)
	req := httptest.NewRequest(http.MethodPost, "/inventory", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func recordMovement(r http.Handler, m handler.MovementRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(m)
	req := httptest.NewRequest(http.MethodPost, "/movements", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func movementFilterFor(lineID int) repo.MovementFilter {
	return repo.MovementFilter{InventoryLineID: &lineID}
}

func mustCreateLine(r http.Handler, line handler.InventoryRequest) handler.InventoryResponse {
	w := createInventoryLine(r, line)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("expected 201 creating line, got %d: %s", w.Code, w.Body.String()))
	}
	var resp handler.InventoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("decoding created line: %v", err))
	}
	return resp
}
