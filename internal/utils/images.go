package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Catalog of stock aircraft photos assigned to new projects until an image
// is uploaded.
var aircraftImages = []string{
	"https://images.unsplash.com/photo-1436491865332-7a61a109cc05?w=800&h=600&fit=crop&q=80",
	"https://images.unsplash.com/photo-1464037866556-6812c9d1c72e?w=800&h=600&fit=crop&q=80",
	"https://images.unsplash.com/photo-1488085061387-422e29b40080?w=800&h=600&fit=crop&q=80",
	"https://images.unsplash.com/photo-1474302770737-173ee21bab63?w=800&h=600&fit=crop&q=80",
	"https://images.pexels.com/photos/46148/aircraft-jet-landing-cloud-46148.jpeg?auto=compress&cs=tinysrgb&dpr=1&w=500",
	"https://aeroin.net/wp-content/uploads/2021/08/Embraer-concept-turbo-1024x683.jpg",
}

// RandomAircraftImage picks a stock photo for a new project.
func RandomAircraftImage() string {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(aircraftImages))))
	if err != nil {
		return aircraftImages[int(time.Now().UnixNano())%len(aircraftImages)]
	}
	return aircraftImages[idx.Int64()]
}

// AircraftImageAt returns the catalog entry at i, wrapping around. The seed
// uses it to give each demo aircraft a distinct photo.
func AircraftImageAt(i int) string {
	return aircraftImages[i%len(aircraftImages)]
}

// ImageFilename builds the stored filename for an uploaded project image
// variant, e.g. "3f2a..._original.jpg".
func ImageFilename(id fmt.Stringer, variant, ext string) string {
	return fmt.Sprintf("%s_%s%s", id.String(), variant, ext)
}
