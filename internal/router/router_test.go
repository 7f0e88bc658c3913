package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"livestock-registry/internal/router"
)

func TestHTTP_EndToEnd_HerdLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	today := time.Now().UTC()
	ymd := func(t time.Time) string { return t.Format("2006-01-02") }

	// 1) Crear especie con esquema de atributos
	speciesID, attrID := createSpecies(t, ts.URL)

	// 2) Crear animal con atributo válido
	animalID := createAnimal(t, ts.URL, speciesID, map[string]any{
		attrID: map[string]any{"type": "number", "value": 420.5},
	})

	// 3) Atributo desconocido => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals", map[string]any{
			"identifier": "V-999",
			"name":       "Mala",
			"species_id": speciesID,
			"custom_attributes": map[string]any{
				"no-such-attr": map[string]any{"type": "text", "value": "x"},
			},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown attribute, got %d", st)
		}
	}

	// 4) Identificador duplicado => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals", map[string]any{
			"identifier": "V-001",
			"name":       "Copia",
			"species_id": speciesID,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 for duplicate identifier, got %d", st)
		}
	}

	// 5) Borrar la especie con animales => 409
	{
		st, body := doReq(t, ts.URL, "DELETE", "/species/"+speciesID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 deleting species in use, got %d body=%s", st, string(body))
		}
	}

	// 6) Vacunación con refuerzo en 3 días
	vaccID := ""
	{
		st, body := doReq(t, ts.URL, "POST", "/vaccinations", map[string]any{
			"animal_id":        animalID,
			"vaccine_name":     "aftosa",
			"application_date": ymd(today),
			"next_dose_date":   ymd(today.AddDate(0, 0, 3)),
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create vaccination, got %d body=%s", st, string(body))
		}
		vaccID = idFrom(t, body)
	}

	// 7) Aparece en pendientes con la ventana por defecto
	{
		st, body := doReq(t, ts.URL, "GET", "/vaccinations/pending", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pending, got %d", st)
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 pending vaccination, got %d body=%s", len(items), string(body))
		}
	}

	// 8) Y no en vencidas
	{
		st, body := doReq(t, ts.URL, "GET", "/vaccinations/overdue", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 overdue, got %d", st)
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 0 {
			t.Fatalf("expected 0 overdue, got %d", len(items))
		}
	}

	// 9) Alimentación de hoy y de ayer
	{
		for _, f := range []map[string]any{
			{"animal_id": animalID, "food_type": "heno", "quantity": 5.0, "unit": "kg", "date": ymd(today)},
			{"animal_id": animalID, "food_type": "heno", "quantity": 3.0, "unit": "kg", "date": ymd(today.AddDate(0, 0, -1))},
		} {
			st, body := doReq(t, ts.URL, "POST", "/feedings", f)
			if st != http.StatusCreated {
				t.Fatalf("expected 201 create feeding, got %d body=%s", st, string(body))
			}
		}

		st, body := doReq(t, ts.URL, "GET", "/feedings/stats", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 feeding stats, got %d", st)
		}
		var stats struct {
			Today float64 `json:"today"`
			Week  float64 `json:"week"`
		}
		_ = json.Unmarshal(body, &stats)
		if stats.Today != 5 {
			t.Fatalf("feeding today: got %v want 5", stats.Today)
		}
		if stats.Week != 8 {
			t.Fatalf("feeding week: got %v want 8", stats.Week)
		}
	}

	// 10) Serie diaria densa
	{
		st, body := doReq(t, ts.URL, "GET", "/feedings/daily?days=7", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 daily series, got %d", st)
		}
		var series []struct {
			Date  string  `json:"date"`
			Total float64 `json:"total"`
		}
		_ = json.Unmarshal(body, &series)
		if len(series) != 7 {
			t.Fatalf("expected 7 dense points, got %d", len(series))
		}
		if series[6].Date != ymd(today) || series[6].Total != 5 {
			t.Fatalf("last point should be today=5, got %+v", series[6])
		}
	}

	// 11) Celo hace 18 días: próximo celo predicho en 3 días (ciclo 21)
	{
		st, body := doReq(t, ts.URL, "POST", "/reproduction/heat", map[string]any{
			"animal_id": animalID,
			"date":      ymd(today.AddDate(0, 0, -18)),
			"intensity": "high",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create heat, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/reproduction/upcoming-heats", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 upcoming heats, got %d", st)
		}
		var resp struct {
			Items []struct {
				PredictedDate string `json:"predicted_date"`
			} `json:"items"`
			Skipped int `json:"skipped"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Items) != 1 {
			t.Fatalf("expected 1 upcoming heat, got %d body=%s", len(resp.Items), string(body))
		}
		if want := ymd(today.AddDate(0, 0, 3)); resp.Items[0].PredictedDate != want {
			t.Fatalf("predicted heat: got %s want %s", resp.Items[0].PredictedDate, want)
		}
	}

	// 12) El calendario del mes trae el refuerzo de vacuna
	{
		st, body := doReq(t, ts.URL, "GET",
			"/calendar?year="+today.Format("2006")+"&month="+today.Format("1"), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 calendar, got %d body=%s", st, string(body))
		}
		var grid struct {
			Cells []struct {
				Day    int `json:"day"`
				Events []struct {
					Category string `json:"category"`
				} `json:"events"`
			} `json:"cells"`
		}
		_ = json.Unmarshal(body, &grid)
		found := false
		for _, c := range grid.Cells {
			for _, ev := range c.Events {
				if ev.Category == "vaccination_due" {
					found = true
				}
			}
		}
		// El refuerzo cae en 3 días; si el mes cambia en el medio no aparece.
		if today.AddDate(0, 0, 3).Month() == today.Month() && !found {
			t.Fatalf("expected vaccination_due in calendar body=%s", string(body))
		}
	}

	// 13) Perfil del animal incluye registros recientes por módulo
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 animal profile, got %d", st)
		}
		var profile struct {
			Records map[string][]json.RawMessage `json:"records"`
		}
		_ = json.Unmarshal(body, &profile)
		if len(profile.Records["vaccinations"]) != 1 {
			t.Fatalf("profile vaccinations: %s", string(body))
		}
		if len(profile.Records["feedings"]) != 2 {
			t.Fatalf("profile feedings: %s", string(body))
		}
		if len(profile.Records["reproduction"]) != 1 {
			t.Fatalf("profile reproduction: %s", string(body))
		}
	}

	// 14) Borrar el animal cascadea sus registros
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/animals/"+animalID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete animal, got %d", st)
		}

		st, _ = doReq(t, ts.URL, "GET", "/vaccinations/"+vaccID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for cascaded vaccination, got %d", st)
		}

		st, body := doReq(t, ts.URL, "GET", "/feedings", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list feedings, got %d", st)
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 0 {
			t.Fatalf("expected cascade delete of feedings, got %d", len(items))
		}
	}

	// 15) Ahora sí se puede borrar la especie
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/species/"+speciesID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete species, got %d", st)
		}
	}
}

func TestHTTP_BackupRoundTrip(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	speciesID, attrID := createSpecies(t, ts.URL)
	createAnimal(t, ts.URL, speciesID, map[string]any{
		attrID: map[string]any{"type": "number", "value": 380.0},
	})

	st, dump := doReq(t, ts.URL, "GET", "/backup/export", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 export, got %d", st)
	}

	// Instancia limpia: importar debe recrear especie y animal.
	ts2 := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts2.Close()

	var raw map[string]any
	if err := json.Unmarshal(dump, &raw); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}

	st, body := doReq(t, ts2.URL, "POST", "/backup/import", raw)
	if st != http.StatusOK {
		t.Fatalf("expected 200 import, got %d body=%s", st, string(body))
	}
	var sum struct {
		SpeciesCreated int `json:"species_created"`
		AnimalsCreated int `json:"animals_created"`
	}
	_ = json.Unmarshal(body, &sum)
	if sum.SpeciesCreated != 1 || sum.AnimalsCreated != 1 {
		t.Fatalf("import summary: %s", string(body))
	}

	// Re-importar el mismo dump es idempotente sobre especies y animales.
	st, body = doReq(t, ts2.URL, "POST", "/backup/import", raw)
	if st != http.StatusOK {
		t.Fatalf("expected 200 re-import, got %d body=%s", st, string(body))
	}
	var sum2 struct {
		SpeciesCreated  int `json:"species_created"`
		SpeciesExisting int `json:"species_existing"`
		AnimalsCreated  int `json:"animals_created"`
		AnimalsExisting int `json:"animals_existing"`
	}
	_ = json.Unmarshal(body, &sum2)
	if sum2.SpeciesCreated != 0 || sum2.SpeciesExisting != 1 {
		t.Fatalf("re-import species: %s", string(body))
	}
	if sum2.AnimalsCreated != 0 || sum2.AnimalsExisting != 1 {
		t.Fatalf("re-import animals: %s", string(body))
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, string(body))
	}
}

func createSpecies(t *testing.T, baseURL string) (speciesID, attrID string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/species", map[string]any{
		"name":        "Vaca",
		"description": "bovinos de leche",
		"icon":        "cow",
		"attributes": []map[string]any{
			{"name": "peso", "type": "number"},
		},
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create species, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID         string `json:"id"`
		Attributes []struct {
			ID string `json:"id"`
		} `json:"attributes"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" || len(resp.Attributes) != 1 {
		t.Fatalf("create species: body=%s", string(body))
	}
	return resp.ID, resp.Attributes[0].ID
}

func createAnimal(t *testing.T, baseURL, speciesID string, attrs map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", map[string]any{
		"identifier":        "V-001",
		"name":              "Lola",
		"species_id":        speciesID,
		"sex":               "female",
		"custom_attributes": attrs,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}
	return idFrom(t, body)
}

func idFrom(t *testing.T, body []byte) string {
	t.Helper()

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("missing id in body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
