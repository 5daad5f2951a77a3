package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-rental/internal/models"
)

// seeder creates demo data through the public API.
type seeder struct {
	apiURL string
	token  string
	client *http.Client
	rnd    *rand.Rand
}

func newSeeder(apiURL string, seed int64) *seeder {
	return &seeder{
		apiURL: apiURL,
		client: &http.Client{Timeout: 10 * time.Second},
		rnd:    rand.New(rand.NewSource(seed)),
	}
}

func (s *seeder) post(path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, s.apiURL+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST %s failed with status: %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (s *seeder) login(mail, password string) error {
	var resp models.LoginResponse
	if err := s.post("/api/auth/login", models.LoginRequest{Mail: mail, Password: password}, &resp); err != nil {
		return err
	}
	s.token = resp.Token
	return nil
}

func ptr[V any](v V) *V { return &v }

func (s *seeder) pick(values []string) string {
	return values[s.rnd.Intn(len(values))]
}

func (s *seeder) base(brands []string, categories []string, rate int) models.VehicleBaseInput {
	return models.VehicleBaseInput{
		Brand:     ptr(s.pick(brands)),
		Model:     ptr("Demo " + strconv.Itoa(100+s.rnd.Intn(900))),
		Color:     ptr(s.pick([]string{"blanc", "noir", "gris", "rouge", "bleu"})),
		Category:  ptr(s.pick(categories)),
		DailyRate: ptr(rate + s.rnd.Intn(rate)),
		Odometer:  ptr(s.rnd.Intn(80000)),
		Active:    ptr(true),
		Retired:   ptr(false),
	}
}

// vehicle returns the collection path and a creation request for kind.
func (s *seeder) vehicle(kind models.Kind) (string, any) {
	switch kind {
	case models.KindCar:
		return "/api/cars", models.CarInput{
			VehicleBaseInput: s.base([]string{"Peugeot", "Renault", "Citroen", "Toyota"}, models.CarCategories, 35),
			Seats:            ptr(5), Doors: ptr(5),
			Transmission:    ptr(s.pick(models.Transmissions)),
			AirConditioning: ptr(true), Luggage: ptr(2),
			Fuel:     ptr(s.pick(models.Fuels)),
			Licenses: []models.License{models.LicenseB},
		}
	case models.KindMotorcycle:
		return "/api/motorcycles", models.MotorcycleInput{
			VehicleBaseInput: s.base([]string{"Honda", "Yamaha", "Kawasaki", "Ducati"}, models.MotorcycleCategories, 50),
			Cylinders:        ptr(500 + s.rnd.Intn(700)), Weight: ptr(180 + s.rnd.Intn(60)),
			Power: ptr(45 + s.rnd.Intn(100)), SeatHeight: ptr(780 + s.rnd.Intn(80)),
			Licenses: []models.License{models.LicenseA2},
		}
	case models.KindBicycle:
		return "/api/bicycles", models.BicycleInput{
			VehicleBaseInput: s.base([]string{"Decathlon", "Giant", "Trek"}, models.BicycleCategories, 10),
			FrameSize:        ptr(48 + s.rnd.Intn(12)), Weight: ptr(9 + s.rnd.Intn(15)),
			Electric: ptr(true), BatteryCapacity: ptr(400), Range: ptr(60), DiscBrakes: ptr(true),
		}
	case models.KindUtilityVan:
		return "/api/utility-vans", models.UtilityVanInput{
			VehicleBaseInput: s.base([]string{"Renault", "Ford", "Fiat"}, models.UtilityVanCategories, 60),
			Seats:            ptr(3), Fuel: ptr("diesel"),
			Payload: ptr(1000 + s.rnd.Intn(500)), GrossWeight: ptr(3500),
			Volume: ptr(8 + s.rnd.Intn(10)), ClimateControl: ptr(true),
			Licenses: []models.License{models.LicenseB},
		}
	default:
		return "/api/camping-cars", models.CampingCarInput{
			VehicleBaseInput: s.base([]string{"Hymer", "Pilote", "Burstner"}, models.CampingCarCategories, 90),
			Seats:            ptr(4), Berths: ptr(4), Length: ptr(7),
			Fuel: ptr("diesel"), Kitchen: ptr(true), Shower: ptr(true),
			Licenses: []models.License{models.LicenseB},
		}
	}
}

// seedFleet creates perKind vehicles of every kind and returns how many
// were created.
func (s *seeder) seedFleet(perKind int) (int, error) {
	created := 0
	for _, kind := range models.Kinds {
		for i := 0; i < perKind; i++ {
			path, body := s.vehicle(kind)
			var result struct {
				ID    int64  `json:"id"`
				Brand string `json:"brand"`
			}
			if err := s.post(path, body, &result); err != nil {
				return created, err
			}
			created++
			log.WithFields(log.Fields{
				"vehicle_id": result.ID,
				"kind":       kind,
				"brand":      result.Brand,
			}).Info("Created vehicle")
		}
	}
	return created, nil
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	perKind := 3
	if val := os.Getenv("SEED_PER_KIND"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			perKind = n
		}
	}

	s := newSeeder(apiURL, time.Now().UnixNano())
	if err := s.login(os.Getenv("ADMIN_MAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.WithError(err).Fatal("Login failed")
	}

	n, err := s.seedFleet(perKind)
	if err != nil {
		log.WithError(err).WithField("created", n).Fatal("Seeding failed")
	}
	log.WithField("created", n).Info("Demo fleet ready")
}
