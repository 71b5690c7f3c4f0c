package storage

import (
	"fmt"
	"labcore-service/internal/app/config"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewMinio builds the object store client backing the raw instrument payload
// archive. Only client construction can fail at startup; archival itself is
// best effort and a missing bucket surfaces there, not here.
func NewMinio(driverConfig *config.DriverConfig) *minio.Client {
	endpoint := fmt.Sprintf("%s:%s", driverConfig.Minio.Host, driverConfig.Minio.Port)
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(driverConfig.Minio.Username, driverConfig.Minio.Password, ""),
		Secure: driverConfig.Minio.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Minio client: %s", err.Error())
	}
	log.Println("Successfully connected to minio")
	return client
}
