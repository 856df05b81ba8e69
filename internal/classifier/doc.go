// Package classifier turns raw text into a sentiment label.
//
// Inference is split in two steps, mirroring how the models were trained:
//
//  1. A Vectorizer lowercases and tokenizes the text and maps it to a
//     sparse feature vector (raw counts or tf-idf weights).
//  2. A Model maps the feature vector to a class label. Linear models
//     (logistic regression, linear SVM), single decision trees and random
//     forests are supported.
//
// Both are loaded from JSON files exported from the training environment.
// A Registry loads the vectorizer and the requested models once and is
// read-only afterwards, so it can be shared between goroutines.
//
// A RemoteClient implements the same Predictor interface against an
// external inference service for deployments that keep the models
// elsewhere.
package classifier
