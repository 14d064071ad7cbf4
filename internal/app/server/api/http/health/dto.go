package health

const (
	storageOK      = "ok"
	storageSkipped = "unchecked"
)

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status  string `json:"status" example:"healthy" doc:"Состояние сервиса"`
	Service string `json:"service" example:"healthsync" doc:"Имя сервиса"`
	Storage string `json:"storage" example:"ok" enum:"ok,unchecked" doc:"Результат проверки хранилища"`
}
