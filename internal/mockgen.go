package internal

//go:generate mockgen -destination=./mocks/alerter_mock.go -package=mocks dustbin-dashboard/internal/services Alerter
