package processor

import (
	"fmt"
	"io"
	"sync"

	"github.com/phambaophuc/image-enlarge/internal/models"
)

// BatchEnlarge enlarges every file with the same request on a bounded worker
// pool. Results are in input order; a failed item carries its error and does
// not abort the rest.
func (p *ImageProcessor) BatchEnlarge(files []io.Reader, req *models.EnlargeRequest) []models.BatchImage {
	results := make([]models.BatchImage, len(files))
	if len(files) == 0 {
		return results
	}

	jobs := make(chan int, len(files))

	numWorkers := DefaultWorkers
	if len(files) < numWorkers {
		numWorkers = len(files)
	}

	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p.processBatchItem(i, files, req, results)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (p *ImageProcessor) processBatchItem(i int, files []io.Reader, req *models.EnlargeRequest, results []models.BatchImage) {
	res, err := p.EnlargeImage(files[i], req)
	if err != nil {
		results[i] = models.BatchImage{
			Error: fmt.Sprintf("failed to process image %d: %v", i, err),
		}
		return
	}

	results[i] = models.BatchImage{
		Buffer:       res.Buffer,
		FileSize:     int64(res.Buffer.Len()),
		OriginalSize: res.OriginalSize,
		Size:         res.Size,
	}
}
