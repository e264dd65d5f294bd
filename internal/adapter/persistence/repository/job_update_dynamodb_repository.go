package repository

import (
	"context"
	"sort"
	"time"

	"garagehub/internal/domain/entities"
	"garagehub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultJobUpdatesTableName = "job_updates"
	jobUpdatesJobCardIDIndex   = "job_card_id-index"
)

type jobUpdateItem struct {
	ID          string   `dynamodbav:"id"`
	JobCardID   string   `dynamodbav:"job_card_id"`
	CreatedByID string   `dynamodbav:"created_by_id"`
	Title       string   `dynamodbav:"title"`
	Message     string   `dynamodbav:"message,omitempty"`
	MediaURLs   []string `dynamodbav:"media_urls,omitempty"`
	Visible     bool     `dynamodbav:"is_visible_to_customer"`
	OldStatus   string   `dynamodbav:"previous_status,omitempty"`
	NewStatus   string   `dynamodbav:"new_status,omitempty"`
	CreatedAt   string   `dynamodbav:"created_at"`
}

// JobUpdateDynamoRepository persists the append-only progress trail.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: job_card_id-index (PK: job_card_id)

type JobUpdateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IJobUpdateRepository = (*JobUpdateDynamoRepository)(nil)

func NewJobUpdateDynamoRepository(ddb *dynamodb.Client) *JobUpdateDynamoRepository {
	return &JobUpdateDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("JOB_UPDATES_TABLE", defaultJobUpdatesTableName),
	}
}

func (r *JobUpdateDynamoRepository) Append(ctx context.Context, u entities.ProgressUpdate) (entities.ProgressUpdate, error) {
	av, err := attributevalue.MarshalMap(toJobUpdateItem(u))
	if err != nil {
		return entities.ProgressUpdate{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ProgressUpdate{}, err
	}
	return u, nil
}

func (r *JobUpdateDynamoRepository) ListByJobID(ctx context.Context, jobID string) ([]entities.ProgressUpdate, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(jobUpdatesJobCardIDIndex),
		KeyConditionExpression: aws.String("job_card_id = :jid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":jid": &types.AttributeValueMemberS{Value: jobID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.ProgressUpdate, 0, len(out.Items))
	for _, raw := range out.Items {
		var it jobUpdateItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromJobUpdateItem(it))
	}
	// The trail is insertion-ordered; the GSI gives no ordering guarantee.
	sort.Slice(items, func(i, k int) bool { return items[i].CreatedAt.Before(items[k].CreatedAt) })
	return items, nil
}

func toJobUpdateItem(u entities.ProgressUpdate) jobUpdateItem {
	return jobUpdateItem{
		ID:          u.ID,
		JobCardID:   u.JobCardID,
		CreatedByID: u.CreatedByID,
		Title:       u.Title,
		Message:     u.Message,
		MediaURLs:   u.MediaURLs,
		Visible:     u.Visible,
		OldStatus:   string(u.OldStatus),
		NewStatus:   string(u.NewStatus),
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromJobUpdateItem(it jobUpdateItem) entities.ProgressUpdate {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.ProgressUpdate{
		ID:          it.ID,
		JobCardID:   it.JobCardID,
		CreatedByID: it.CreatedByID,
		Title:       it.Title,
		Message:     it.Message,
		MediaURLs:   it.MediaURLs,
		Visible:     it.Visible,
		OldStatus:   entities.JobStatus(it.OldStatus),
		NewStatus:   entities.JobStatus(it.NewStatus),
		CreatedAt:   createdAt,
	}
}
