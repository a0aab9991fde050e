package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore implements Store on a single DynamoDB table with
// collection as the partition key and the document key as the sort key.
// Documents travel as a JSON payload attribute so field names stay
// identical across backends.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

type dynamoDocument struct {
	Collection string `dynamodbav:"collection"`
	ID         string `dynamodbav:"id"`
	Payload    string `dynamodbav:"payload"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

// NewDynamoStore wraps a DynamoDB client for the given table.
func NewDynamoStore(client *dynamodb.Client, tableName string) *DynamoStore {
	return &DynamoStore{client: client, tableName: tableName}
}

func (s *DynamoStore) key(collection, key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"collection": &types.AttributeValueMemberS{Value: collection},
		"id":         &types.AttributeValueMemberS{Value: key},
	}
}

func (s *DynamoStore) Get(ctx context.Context, collection, key string, dest any) (bool, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(collection, key),
	})
	if err != nil {
		return false, unavailable(err)
	}
	if result.Item == nil {
		return false, nil
	}

	var item dynamoDocument
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return false, fmt.Errorf("unmarshal item %s/%s: %w", collection, key, err)
	}
	if err := json.Unmarshal([]byte(item.Payload), dest); err != nil {
		return false, fmt.Errorf("decode document %s/%s: %w", collection, key, err)
	}
	return true, nil
}

func (s *DynamoStore) Set(ctx context.Context, collection, key string, record any, merge bool) error {
	doc, err := toDoc(record)
	if err != nil {
		return fmt.Errorf("encode document %s/%s: %w", collection, key, err)
	}

	// DynamoDB has no JSON merge primitive, so merge reads the current
	// payload and overlays the new fields before writing back.
	if merge {
		var existing map[string]any
		found, err := s.Get(ctx, collection, key, &existing)
		if err != nil {
			return err
		}
		if found {
			doc = mergeDocs(existing, doc)
		}
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	item := dynamoDocument{
		Collection: collection,
		ID:         key,
		Payload:    string(payload),
		UpdatedAt:  time.Now().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item %s/%s: %w", collection, key, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *DynamoStore) Delete(ctx context.Context, collection, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(collection, key),
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *DynamoStore) ListAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var docs []json.RawMessage
	var lastKey map[string]types.AttributeValue

	for {
		result, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("#c = :collection"),
			ExpressionAttributeNames: map[string]string{
				"#c": "collection",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":collection": &types.AttributeValueMemberS{Value: collection},
			},
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, unavailable(err)
		}

		for _, raw := range result.Items {
			var item dynamoDocument
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("unmarshal item in %s: %w", collection, err)
			}
			docs = append(docs, json.RawMessage(item.Payload))
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	return docs, nil
}
