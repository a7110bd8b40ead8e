package db

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/motifdex/constants"
	"github.com/jsphweid/motifdex/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// GetScoreMetadatas batch reads work metadata (title/composer/year) keyed by
// filename. Scores without a row are simply absent from the result.
func GetScoreMetadatas(filenames []string) (map[string]model.ScoreMetadata, error) {
	if len(filenames) > 10 {
		return nil, fmt.Errorf("not supposed to pass in more than 10 filenames, got %v", len(filenames))
	}

	res := make(map[string]model.ScoreMetadata)

	if len(filenames) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}

	endpoint := constants.GetDynamoEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session because %s", err.Error())
	}

	client := dynamodb.New(session)
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			constants.MetadataTable: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %s", err.Error())
	}

	for _, v := range dbres.Responses[constants.MetadataTable] {
		var s model.ScoreMetadata
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			s.Year = uint(year)
		}
		if v["Title"] != nil && v["Title"].S != nil {
			s.Title = *v["Title"].S
		}
		if v["Composer"] != nil && v["Composer"].S != nil {
			s.Composer = *v["Composer"].S
		}
		res[*v["PK"].S] = s
	}

	return res, nil
}
